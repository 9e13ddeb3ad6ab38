package dto

// CreateProblemReportRequest - точечное сообщение о проблеме
type CreateProblemReportRequest struct {
	Latitude    *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Category    string   `json:"category" validate:"required,oneof=electricity water sanitation safety"`
	Severity    int      `json:"severity" validate:"required,min=1,max=5"`
	Description string   `json:"description" validate:"max=2000"`
	ZoneID      *int64   `json:"zone_id,omitempty" validate:"omitempty,min=1"`
}

// ListProblemReportsRequest - фильтр списка
type ListProblemReportsRequest struct {
	Category string `json:"category" query:"category" validate:"omitempty,oneof=electricity water sanitation safety"`
	Status   string `json:"status" query:"status" validate:"omitempty,oneof=open in_progress resolved"`
	Limit    int    `json:"limit" query:"limit" validate:"omitempty,min=1,max=500"`
}
