// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/config"
)

func TestTelemetryDisabledIsLocal(t *testing.T) {
	tel, err := NewTelemetry(
		context.Background(),
		config.OtelConfig{Enabled: false, ServiceName: "pragati-backend"},
		config.AppConfig{},
	)
	require.NoError(t, err)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSampleRateBounds(t *testing.T) {
	assert.InDelta(t, defaultSampleRate, sampleRate(0), 1e-9)
	assert.InDelta(t, defaultSampleRate, sampleRate(1.5), 1e-9)
	assert.InDelta(t, 0.5, sampleRate(0.5), 1e-9)
}

func TestTraceIDOutsideSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}

func TestFaultRecordsOnSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.NotEmpty(t, TraceID(ctx))

	err := Fault(ctx, "admin.changeUserRole", "db", errors.New("conn reset"))
	span.End()

	require.ErrorIs(t, err, ErrInfrastructure)
	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestNewExporterIsLazy(t *testing.T) {
	exporter, err := newExporter(context.Background(), config.OtelConfig{
		Endpoint: "127.0.0.1:4317",
		Insecure: true,
	})
	require.NoError(t, err)
	require.NotNil(t, exporter)
	require.NoError(t, exporter.Shutdown(context.Background()))
}
