package dto

import "github.com/infra-status-service/internal/domain"

// SubmitServiceLogRequest - сообщение жителя о наличии услуги
type SubmitServiceLogRequest struct {
	ServiceType   string  `json:"service_type" validate:"required,oneof=electricity water"`
	Status        string  `json:"status" validate:"required,oneof=available cut_off"`
	Neighborhood  string  `json:"neighborhood" validate:"required,notblank,max=200"`
	LogDate       string  `json:"log_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quality       *string `json:"quality,omitempty" validate:"omitempty,max=50"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ArrivalTime   *string `json:"arrival_time,omitempty" validate:"omitempty,max=20"`
	DepartureTime *string `json:"departure_time,omitempty" validate:"omitempty,max=20"`
}

// SubmitServiceLogResponse - созданная запись и сводка за день
type SubmitServiceLogResponse struct {
	Log                   domain.ServiceLog            `json:"log"`
	ReporterServiceTypes  []domain.ServiceType         `json:"reporter_service_types"`
	CommunityAvailability []domain.ServiceAvailability `json:"community_availability"`
}

// HeatmapRequest - параметры heatmap; пустые значения берутся по умолчанию
type HeatmapRequest struct {
	ServiceType string `json:"service_type" query:"service_type" validate:"omitempty,oneof=electricity water"`
	Date        string `json:"date" query:"date" validate:"omitempty,datetime=2006-01-02"`
}
