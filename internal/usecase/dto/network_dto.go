package dto

import (
	"encoding/json"

	"github.com/infra-status-service/internal/domain"
)

// CreateNodeRequest - координаты проверяются после авторизации
type CreateNodeRequest struct {
	NetworkType string          `json:"network_type" validate:"required,oneof=water electricity sewage phone"`
	Subtype     string          `json:"subtype" validate:"max=100"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Status      string          `json:"status,omitempty" validate:"omitempty,oneof=active maintenance broken"`
	Metadata    domain.Metadata `json:"metadata,omitempty"`
}

// CreateLineRequest - coordinates разбираются после авторизации
type CreateLineRequest struct {
	NetworkType string          `json:"network_type" validate:"required,oneof=water electricity sewage phone"`
	Coordinates json.RawMessage `json:"coordinates" swaggertype:"array,number"`
	Status      string          `json:"status,omitempty" validate:"omitempty,oneof=active maintenance broken"`
	Metadata    domain.Metadata `json:"metadata,omitempty"`
}

// UpdateAssetRequest - новый статус и/или полная замена metadata
type UpdateAssetRequest struct {
	Status   *string          `json:"status,omitempty" validate:"omitempty,oneof=active maintenance broken"`
	Metadata *domain.Metadata `json:"metadata,omitempty"`
}

// DisplayLayerRequest - service_type включает раскраску зон по heatmap
type DisplayLayerRequest struct {
	ServiceType string `json:"service_type" query:"service_type" validate:"omitempty,oneof=electricity water"`
}

// ZoneRequest - создание и замена зоны
type ZoneRequest struct {
	Name    string          `json:"name" validate:"required,notblank,max=200"`
	Polygon json.RawMessage `json:"polygon" swaggertype:"array,number"`
}
