package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServiceType - тип коммунальной услуги, о которой сообщают жители
type ServiceType string

const (
	ServiceElectricity ServiceType = "electricity"
	ServiceWater       ServiceType = "water"
)

// ServiceTypes - закрытый набор типов услуг
var ServiceTypes = []ServiceType{ServiceElectricity, ServiceWater}

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceElectricity, ServiceWater:
		return true
	}
	return false
}

// ServiceStatus - наблюдаемое состояние услуги
type ServiceStatus string

const (
	StatusAvailable ServiceStatus = "available"
	StatusCutOff    ServiceStatus = "cut_off"
)

func (s ServiceStatus) Valid() bool {
	return s == StatusAvailable || s == StatusCutOff
}

// DateLayout - формат log_date
const DateLayout = "2006-01-02"

// ServiceLog - одно сообщение жителя о наличии услуги.
// Записи только добавляются: не обновляются и не удаляются.
type ServiceLog struct {
	ID            int64         `json:"id" db:"id"`
	ReporterID    *uuid.UUID    `json:"reporter_id,omitempty" db:"reporter_id"`
	ServiceType   ServiceType   `json:"service_type" db:"service_type"`
	Status        ServiceStatus `json:"status" db:"status"`
	Neighborhood  string        `json:"neighborhood" db:"neighborhood"`
	DepartmentID  *int64        `json:"department_id,omitempty" db:"department_id"`
	LogDate       time.Time     `json:"log_date" db:"log_date"`
	Quality       *string       `json:"quality,omitempty" db:"quality"`
	Notes         *string       `json:"notes,omitempty" db:"notes"`
	ArrivalTime   *string       `json:"arrival_time,omitempty" db:"arrival_time"`
	DepartureTime *string       `json:"departure_time,omitempty" db:"departure_time"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// NeighborhoodTally - агрегат по району за день для одного типа услуги
type NeighborhoodTally struct {
	Neighborhood   string `db:"neighborhood"`
	Total          int    `db:"total"`
	AvailableCount int    `db:"available_count"`
}

// ServiceAvailability - доля сообщений "available" по городу за день
type ServiceAvailability struct {
	ServiceType    ServiceType `json:"service_type" db:"service_type"`
	Total          int         `json:"total_reports" db:"total"`
	AvailableCount int         `json:"available_count" db:"available_count"`
	Percent        float64     `json:"available_percent" db:"-"`
}

// ServiceLogCreated - событие после успешной записи ServiceLog
type ServiceLogCreated struct {
	Log ServiceLog
}

// TrendKey - ключ скользящего окна для пары (тип услуги, район).
// Район берется как есть, без нормализации.
func TrendKey(serviceType ServiceType, neighborhood string) string {
	return fmt.Sprintf("trend:%s:%s", serviceType, neighborhood)
}
