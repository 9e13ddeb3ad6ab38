package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
)

// MsgPublisher - часть *nats.Conn, нужная диспетчеру
type MsgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// Dispatcher публикует уведомление каждому адресату в его subject
// "<prefix>.<user_id>". Скорость ограничена общим лимитером.
type Dispatcher struct {
	conn    MsgPublisher
	prefix  string
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewDispatcher(conn MsgPublisher, subjectPrefix string, ratePerSecond float64, burst int, logger *zap.Logger) repository.Dispatcher {
	if burst < 1 {
		burst = 1
	}
	return &Dispatcher{
		conn:    conn,
		prefix:  subjectPrefix,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logger:  logger,
	}
}

// Subject - адрес доставки пользователю
func (d *Dispatcher) Subject(userID uuid.UUID) string {
	return d.prefix + "." + userID.String()
}

// Dispatch отправляет payload всем адресатам. Ошибка одного адресата попадает
// в список и не останавливает остальных. Возвращаемая ошибка - только отмена ctx
// или невозможность сериализовать payload.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []uuid.UUID, payload domain.NotificationPayload) ([]domain.DeliveryFailure, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}

	var failures []domain.DeliveryFailure
	for _, userID := range recipients {
		if err := d.limiter.Wait(ctx); err != nil {
			return failures, err
		}

		msg := &nats.Msg{
			Subject: d.Subject(userID),
			Data:    data,
		}
		otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))

		if err := d.conn.PublishMsg(msg); err != nil {
			d.logger.Warn("Failed to deliver notification",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			failures = append(failures, domain.DeliveryFailure{UserID: userID, Err: err})
		}
	}

	return failures, nil
}
