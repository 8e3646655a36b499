package tracing

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultTracingConfig(t *testing.T) {
	config := DefaultTracingConfig()

	assert.Equal(t, "wahabridge", config.ServiceName)
	assert.Equal(t, "dev", config.ServiceVersion)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "http://localhost:4318/v1/traces", config.OTLPEndpoint)
	assert.Equal(t, 0.1, config.SampleRate)
	assert.False(t, config.Enabled)
	assert.True(t, config.UseStdout)
}

func TestTracingManagerDisabled(t *testing.T) {
	logger := logrus.New()
	config := DefaultTracingConfig()
	config.Enabled = false

	tm := NewTracingManager(config, logger)
	require.NoError(t, tm.Initialize(context.Background()))
	assert.Nil(t, tm.tracerProvider)
	require.NoError(t, tm.Shutdown(context.Background()))
}

func TestTracingManagerStdoutExporter(t *testing.T) {
	logger := logrus.New()
	config := DefaultTracingConfig()
	config.Enabled = true
	config.UseStdout = true
	config.SampleRate = 1.0

	tm := NewTracingManager(config, logger)
	require.NoError(t, tm.Initialize(context.Background()))
	require.NotNil(t, tm.tracerProvider)

	tracer := tm.GetTracer("test")
	assert.NotNil(t, tracer)

	require.NoError(t, tm.Shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test_span",
		attribute.String("key", "value"),
	)
	defer span.End()

	assert.NotNil(t, ctx)
	assert.NotNil(t, span)
}

func TestSpanHelpersNoopWithoutProvider(t *testing.T) {
	ctx := context.Background()

	// None of these may panic when no span is recording
	AddSpanAttributes(ctx, attribute.String("key", "value"))
	SetSpanStatus(ctx, codes.Error, "failed")
	RecordError(ctx, fmt.Errorf("boom"))
}

func TestWithOtelTracing(t *testing.T) {
	logger := logrus.New()
	config := DefaultTracingConfig()
	config.Enabled = true
	config.UseStdout = true
	config.SampleRate = 1.0

	tm := NewTracingManager(config, logger)
	require.NoError(t, tm.Initialize(context.Background()))
	defer func() { _ = tm.Shutdown(context.Background()) }()

	ctx, span := WithOtelTracing(context.Background(), "webhook_request")
	defer span.End()

	// The span's IDs must be mirrored into the request-ID layer
	assert.Equal(t, GetOtelTraceID(ctx), GetTraceID(ctx))
	assert.Equal(t, GetOtelSpanID(ctx), GetSpanID(ctx))
	assert.NotEmpty(t, GetTraceID(ctx))
}
