// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package annotation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collect returns the int64 sums recorded by r, keyed by
// metric name and then by the kind or reason attribute
// (empty when the point has neither).
func collect(t *testing.T, r sdkmetric.Reader) map[string]map[string]int64 {
	var rm metricdata.ResourceMetrics
	require.NoError(t, r.Collect(context.Background(), &rm))
	out := make(map[string]map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != instrumentationName {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", m.Name)
			pts := make(map[string]int64)
			for _, dp := range sum.DataPoints {
				var k string
				for _, key := range []attribute.Key{"kind", "reason"} {
					if v, ok := dp.Attributes.Value(key); ok {
						k = v.AsString()
					}
				}
				pts[k] += dp.Value
			}
			out[m.Name] = pts
		}
	}
	return out
}

func TestMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	met := newMetrics(mp.Meter(instrumentationName))

	parent := testStatic(t, 1, 1)
	s, c := testScene(t, parent, zerolog.Nop())
	c.met = met
	s.Flush()
	require.NotNil(t, s.Proxy(c))

	c.SetColor(Color{1, 2, 3})
	c.SetColor(Color{4, 5, 6})

	c.Detach()
	s.Tick(1.0 / 60)
	s.Flush()
	require.Nil(t, s.Proxy(c))

	got := collect(t, reader)
	assert.Equal(t, map[string]int64{"static": 1}, got["annotation.proxy.created"])
	assert.Equal(t, map[string]int64{"no_parent": 1}, got["annotation.proxy.skipped"])
	assert.Equal(t, map[string]int64{"": 2}, got["annotation.color.updates"])
}

func TestMetricsSkinned(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	parent := testSkinned(t, 1, 1)
	parent.PredictedLOD = 5
	s, c := testScene(t, parent, zerolog.Nop())
	c.met = newMetrics(mp.Meter(instrumentationName))
	s.Flush()
	require.Nil(t, s.Proxy(c))

	parent.PredictedLOD = 0
	s.MarkRenderStateDirty(parent)
	s.Flush()
	require.NotNil(t, s.Proxy(c))

	got := collect(t, reader)
	assert.Equal(t, map[string]int64{"skinned": 1}, got["annotation.proxy.created"])
	assert.Equal(t, map[string]int64{"data_not_ready": 1}, got["annotation.proxy.skipped"])
	assert.Zero(t, got["annotation.color.updates"][""])
}
