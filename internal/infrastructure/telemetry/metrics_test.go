package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	cfg := MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "test-service",
		Insecure:          true,
	}

	provider, err := NewMeterProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.False(t, provider.IsEnabled())

	// A disabled provider still hands out a usable meter
	meter := provider.Meter("test")
	assert.NotNil(t, meter)

	// Shutdown and ForceFlush should be safe on a disabled provider
	assert.NoError(t, provider.Shutdown(ctx))
	assert.NoError(t, provider.ForceFlush(ctx))
}

func TestCounterAndGauge_NoopMeter(t *testing.T) {
	ctx := context.Background()

	provider, err := NewMeterProvider(ctx, MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	meter := provider.Meter("test")

	counter, err := NewCounter(meter, "test_counter", "test counter", "{events}")
	require.NoError(t, err)
	counter.Inc(ctx)
	counter.Add(ctx, 5)

	gauge, err := NewGauge(meter, "test_gauge", "test gauge", "{units}")
	require.NoError(t, err)
	gauge.Record(ctx, 42)
}
