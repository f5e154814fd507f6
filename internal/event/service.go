package event

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// Producer interface for the event stream (NATS/Kafka)
type Producer interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// Service publishes activity events. Publishing is best-effort: failures are
// logged and never surfaced to the request that triggered them. A nil
// Service (no broker configured) is a no-op.
type Service struct {
	producer Producer
	logger   *slog.Logger
}

func NewService(producer Producer, logger *slog.Logger) *Service {
	return &Service{
		producer: producer,
		logger:   logger,
	}
}

func (s *Service) UserSignedUp(ctx context.Context, userID int) {
	s.publish(ctx, Event{Type: TypeUserSignedUp, UserID: userID})
}

func (s *Service) BucketListCreated(ctx context.Context, userID, bucketListID int, name string) {
	s.publish(ctx, Event{Type: TypeBucketListCreated, UserID: userID, BucketListID: bucketListID, Name: name})
}

func (s *Service) BucketListDeleted(ctx context.Context, userID, bucketListID int) {
	s.publish(ctx, Event{Type: TypeBucketListDeleted, UserID: userID, BucketListID: bucketListID})
}

func (s *Service) ItemDone(ctx context.Context, userID, bucketListID, itemID int) {
	s.publish(ctx, Event{Type: TypeItemDone, UserID: userID, BucketListID: bucketListID, ItemID: itemID})
}

func (s *Service) publish(ctx context.Context, ev Event) {
	if s == nil || s.producer == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()

	if err := s.producer.Publish(ctx, strconv.Itoa(ev.UserID), ev); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", "type", ev.Type, "error", err)
	}
}
