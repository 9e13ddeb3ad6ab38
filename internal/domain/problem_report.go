package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProblemCategory string

const (
	ProblemElectricity ProblemCategory = "electricity"
	ProblemWater       ProblemCategory = "water"
	ProblemSanitation  ProblemCategory = "sanitation"
	ProblemSafety      ProblemCategory = "safety"
)

type ProblemStatus string

const (
	ProblemOpen       ProblemStatus = "open"
	ProblemInProgress ProblemStatus = "in_progress"
	ProblemResolved   ProblemStatus = "resolved"
)

// ProblemReport - точечное сообщение о проблеме инфраструктуры.
// В тренды и heatmap не входит.
type ProblemReport struct {
	ID          int64           `json:"id" db:"id"`
	ReporterID  *uuid.UUID      `json:"reporter_id,omitempty" db:"reporter_id"`
	Latitude    float64         `json:"latitude" db:"latitude"`
	Longitude   float64         `json:"longitude" db:"longitude"`
	Category    ProblemCategory `json:"category" db:"category"`
	Severity    int             `json:"severity" db:"severity"`
	Description string          `json:"description" db:"description"`
	ZoneID      *int64          `json:"zone_id,omitempty" db:"zone_id"`
	Status      ProblemStatus   `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ProblemReportFilter - фильтр списка, пустые поля не ограничивают выборку
type ProblemReportFilter struct {
	Category ProblemCategory
	Status   ProblemStatus
	Limit    int
}
