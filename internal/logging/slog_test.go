package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_AllLevels(t *testing.T) {
	log, buf := newBufferLogger()
	ctx := context.Background()

	log.Debug(ctx, "probe request sent", "url", "http://probe")
	log.Info(ctx, "full sync finished", "pushed", 2)
	log.Warn(ctx, "pull failed", "entity", "products")
	log.Error(ctx, "upload failed", "sale", "abc")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="probe request sent"`)
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "pushed=2")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "entity=products")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "sale=abc")
}

func TestSlogLogger_WithCarriesAttributes(t *testing.T) {
	log, buf := newBufferLogger()

	child := log.With("store", 3)
	child.Info(context.Background(), "quick sync finished", "pushed", 0)

	out := buf.String()
	assert.Contains(t, out, "store=3")
	assert.Contains(t, out, "pushed=0")

	buf.Reset()
	log.Info(context.Background(), "parent untouched")
	assert.NotContains(t, buf.String(), "store=3")
}
