package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamServiceAvailable - очередь заданий на рассылку "услуга восстановлена"
const StreamServiceAvailable = "stream:notify:service_available"

// ServiceAvailableEvent - задание на рассылку соседям после срабатывания тренда
type ServiceAvailableEvent struct {
	ServiceType   ServiceType `json:"service_type"`
	Neighborhood  string      `json:"neighborhood"`
	ExcludeUserID *uuid.UUID  `json:"exclude_user_id,omitempty"`
	TriggerLogID  int64       `json:"trigger_log_id"`
	FiredAt       time.Time   `json:"fired_at"`
}

// NotificationPayload - то, что получает каждый адресат
type NotificationPayload struct {
	Kind         string      `json:"kind"`
	ServiceType  ServiceType `json:"service_type"`
	Neighborhood string      `json:"neighborhood"`
}

const NotificationKindServiceAvailable = "service_available"

// DeliveryFailure - неудачная доставка одному адресату
type DeliveryFailure struct {
	UserID uuid.UUID
	Err    error
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
	// Deliveries - сколько раз сообщение выдавалось потребителям, 0 если неизвестно
	Deliveries int64
}
