package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlaubsverwaltung/internal/event"
)

type publisherFunc func(ctx context.Context, e event.Event) error

func (f publisherFunc) Publish(ctx context.Context, e event.Event) error { return f(ctx, e) }

func TestPublisher(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	var delivered []event.Type
	failing := errors.New("nats down")
	pub := m.Publisher(publisherFunc(func(_ context.Context, e event.Event) error {
		if e.Type == event.SickNoteCreated {
			return failing
		}
		delivered = append(delivered, e.Type)
		return nil
	}))

	ctx := context.Background()
	require.NoError(t, pub.Publish(ctx, event.New(event.ApplicationAllowed, nil, "p1")))
	require.NoError(t, pub.Publish(ctx, event.New(event.ApplicationAllowed, nil, "p1")))
	assert.ErrorIs(t, pub.Publish(ctx, event.New(event.SickNoteCreated, nil)), failing)

	assert.Equal(t, []event.Type{event.ApplicationAllowed, event.ApplicationAllowed}, delivered)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.events.WithLabelValues("application.allowed", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.events.WithLabelValues("sicknote.created", "error")))
}

func TestObserveJob(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveJob("remind_waiting", 3, nil, 20*time.Millisecond)
	m.ObserveJob("remind_waiting", 0, errors.New("db"), time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.jobRuns.WithLabelValues("remind_waiting", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.jobRuns.WithLabelValues("remind_waiting", "error")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.jobItems.WithLabelValues("remind_waiting")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.jobDuration))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
