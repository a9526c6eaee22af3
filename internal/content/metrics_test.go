package content

import (
	"context"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type recordingCounter struct {
	noop.Int64Counter

	mu      sync.Mutex
	results []string
}

func (c *recordingCounter) Add(_ context.Context, _ int64, opts ...metric.AddOption) {
	cfg := metric.NewAddConfig(opts)
	attrs := cfg.Attributes()
	value, _ := attrs.Value("result")
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, value.AsString())
}

type recordingMeter struct {
	noop.Meter
	lookups *recordingCounter
}

func (m recordingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return m.lookups, nil
}

func TestStoreRecordsCacheLookups(t *testing.T) {
	t.Parallel()

	counter := &recordingCounter{}
	store := NewStore(fstest.MapFS{
		"en/page.md": {Data: []byte("---\ntitle: Page\n---\nbody\n")},
	}, Options{Meter: recordingMeter{lookups: counter}})

	ctx := context.Background()
	_, err := store.Get(ctx, "en", "page")
	require.NoError(t, err)
	_, err = store.Get(ctx, "en", "page")
	require.NoError(t, err)
	_, err = store.Get(ctx, "en", "missing")
	require.Error(t, err)

	require.Equal(t, []string{"miss", "hit", "miss"}, counter.results)
}
