package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	usersSignedUp      metric.Int64Counter
	logins             metric.Int64Counter
	bucketListsCreated metric.Int64Counter
	bucketListsDeleted metric.Int64Counter
	bucketListsViewed  metric.Int64Counter
	searchesPerformed  metric.Int64Counter
	itemsCreated       metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.usersSignedUp, err = meter.Int64Counter(
		"bucketlist_service.users.signed_up",
		metric.WithDescription("Total number of users signed up"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	m.logins, err = meter.Int64Counter(
		"bucketlist_service.users.logged_in",
		metric.WithDescription("Total number of successful logins"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, err
	}

	m.bucketListsCreated, err = meter.Int64Counter(
		"bucketlist_service.bucketlists.created",
		metric.WithDescription("Total number of bucketlists created"),
		metric.WithUnit("{bucketlist}"),
	)
	if err != nil {
		return nil, err
	}

	m.bucketListsDeleted, err = meter.Int64Counter(
		"bucketlist_service.bucketlists.deleted",
		metric.WithDescription("Total number of bucketlists deleted"),
		metric.WithUnit("{bucketlist}"),
	)
	if err != nil {
		return nil, err
	}

	m.bucketListsViewed, err = meter.Int64Counter(
		"bucketlist_service.bucketlists.list_viewed",
		metric.WithDescription("Total number of times the bucketlist index was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.searchesPerformed, err = meter.Int64Counter(
		"bucketlist_service.bucketlists.searched",
		metric.WithDescription("Total number of bucketlist searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, err
	}

	m.itemsCreated, err = meter.Int64Counter(
		"bucketlist_service.items.created",
		metric.WithDescription("Total number of items created"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordUserSignedUp(ctx context.Context) {
	if m != nil && m.usersSignedUp != nil {
		m.usersSignedUp.Add(ctx, 1)
	}
}

func (m *Metrics) RecordLogin(ctx context.Context) {
	if m != nil && m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m *Metrics) RecordBucketListCreated(ctx context.Context) {
	if m != nil && m.bucketListsCreated != nil {
		m.bucketListsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordBucketListDeleted(ctx context.Context) {
	if m != nil && m.bucketListsDeleted != nil {
		m.bucketListsDeleted.Add(ctx, 1)
	}
}

func (m *Metrics) RecordBucketListsViewed(ctx context.Context) {
	if m != nil && m.bucketListsViewed != nil {
		m.bucketListsViewed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSearchPerformed(ctx context.Context) {
	if m != nil && m.searchesPerformed != nil {
		m.searchesPerformed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordItemCreated(ctx context.Context) {
	if m != nil && m.itemsCreated != nil {
		m.itemsCreated.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}
