package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type recordingTracer struct {
	starts, ends int
}

func (r *recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	r.starts++
	return ctx
}

func (r *recordingTracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {
	r.ends++
}

func TestMultiTracerCallsEveryTracer(t *testing.T) {
	a, b := &recordingTracer{}, &recordingTracer{}
	mt := &multiTracer{tracers: []pgx.QueryTracer{a, b}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1, a.starts)
	assert.Equal(t, 1, a.ends)
	assert.Equal(t, 1, b.starts)
	assert.Equal(t, 1, b.ends)
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	fast := &slowQueryTracer{threshold: time.Hour, logger: &log}
	ctx := fast.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	fast.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Zero(t, buf.Len())

	slow := &slowQueryTracer{threshold: time.Nanosecond, logger: &log}
	ctx = slow.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
	time.Sleep(time.Millisecond)
	slow.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Contains(t, buf.String(), "slow query")
	assert.Contains(t, buf.String(), "pg_sleep")
}

func TestSlowQueryTracerPrefersContextLogger(t *testing.T) {
	var fallback, scoped bytes.Buffer
	fallbackLog := zerolog.New(&fallback)
	scopedLog := zerolog.New(&scoped).With().Str("request_id", "abc").Logger()

	tracer := &slowQueryTracer{threshold: time.Nanosecond, logger: &fallbackLog}
	ctx := scopedLog.WithContext(context.Background())
	ctx = tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	time.Sleep(time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Zero(t, fallback.Len())
	assert.Contains(t, scoped.String(), `"request_id":"abc"`)
}
