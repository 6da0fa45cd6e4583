package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/workoutlog/internal/telemetry/metrics"
)

var _ Store = (*Instrumented)(nil)

type Instrumented struct {
	inner   Store
	metrics *metrics.Manager
}

func NewInstrumented(inner Store, metricsManager *metrics.Manager) *Instrumented {
	return &Instrumented{
		inner:   inner,
		metrics: metricsManager,
	}
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	i.metrics.CounterStoreOps.WithLabelValues("get").Inc()
	value, err := i.inner.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		i.metrics.CounterStoreErrors.WithLabelValues("get").Inc()
	}
	return value, err
}

func (i *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	return i.observeWrite("set", func() error {
		return i.inner.Set(ctx, key, value)
	})
}

func (i *Instrumented) SetMany(ctx context.Context, values map[string][]byte) error {
	return i.observeWrite("set_many", func() error {
		return i.inner.SetMany(ctx, values)
	})
}

func (i *Instrumented) Close() error {
	return i.inner.Close()
}

func (i *Instrumented) observeWrite(op string, write func() error) error {
	i.metrics.CounterStoreOps.WithLabelValues(op).Inc()
	defer func(begin time.Time) {
		i.metrics.HistStoreWriteDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	err := write()
	if err != nil {
		i.metrics.CounterStoreErrors.WithLabelValues(op).Inc()
	}
	return err
}
