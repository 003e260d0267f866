package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"heartgate/internal/card"
)

func newRecordingObserver(t *testing.T) (*Observer, *tracetest.SpanRecorder, *Metrics) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	metrics := NewMetrics()
	return NewObserver(context.Background(), NewTracerWithProvider(provider), metrics, nil), rec, metrics
}

func TestNewTracer_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	tr, err := NewTracer(context.Background())
	require.NoError(t, err)
	assert.False(t, tr.Enabled())
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestObserver_RecordsSessionFlow(t *testing.T) {
	obs, rec, metrics := newRecordingObserver(t)
	c := card.NewController(card.Options{Observer: obs})
	obs.Start(c.Session())

	require.NoError(t, c.SetInput("wrong"))
	_, err := c.Submit()
	require.NoError(t, err)
	require.NoError(t, c.SetInput(card.DefaultSecret))
	_, err = c.Submit()
	require.NoError(t, err)
	require.NoError(t, c.DodgeNo(card.Viewport{Width: 80, Height: 24}))
	_, err = c.AcceptYes()
	require.NoError(t, err)
	_, err = c.SlotFailed(1)
	require.NoError(t, err)
	obs.End(c.Session())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.submits.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.submits.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.dodges))
	assert.InDelta(t, 1.2, testutil.ToFloat64(metrics.yesScale), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.slotFallback))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.transitions.WithLabelValues("proposal", "gallery")))

	var names []string
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{
		"heartgate.screen.password",
		"heartgate.screen.proposal",
		"heartgate.screen.gallery",
		"heartgate.session",
	}, names)

	for _, s := range rec.Ended() {
		if s.Name() != "heartgate.screen.password" {
			continue
		}
		require.Len(t, s.Events(), 1)
		assert.Equal(t, "password.rejected", s.Events()[0].Name)
		for _, a := range s.Events()[0].Attributes {
			assert.NotEqual(t, "wrong", a.Value.AsString(), "typed input must not be recorded")
		}
	}
}

func TestMetrics_WriteFile(t *testing.T) {
	m := NewMetrics()
	m.dodges.Inc()
	path := filepath.Join(t.TempDir(), "heartgate.prom")

	n, err := testutil.GatherAndCount(m.Gatherer(), "heartgate_no_dodges_total", "heartgate_yes_scale")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, m.WriteFile(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "heartgate_no_dodges_total 1")
	assert.Contains(t, string(b), "heartgate_yes_scale 1")
}

func TestMetrics_WriteFileBadPath(t *testing.T) {
	m := NewMetrics()
	err := m.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
