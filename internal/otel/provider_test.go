package otel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.Nil(t, p.LoggerProvider())
	assert.NoError(t, p.Flush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNew_EnabledWithoutSink(t *testing.T) {
	_, err := New(Config{Enabled: true, ServiceName: "tankagent"})
	assert.ErrorContains(t, err, "no log writer or endpoint")
}

func TestNew_WithWriter(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(Config{
		Enabled:      true,
		ServiceName:  "tankagent",
		BatchTimeout: time.Second,
		LogWriter:    &buf,
		Attributes:   map[string]string{"unit.colour": "R"},
	})
	require.NoError(t, err)
	require.NotNil(t, p.LoggerProvider())
	assert.True(t, p.Enabled())

	ctx := context.Background()
	assert.NoError(t, p.Flush(ctx))
	assert.NoError(t, p.Shutdown(ctx))
}

func TestAttributes_Sorted(t *testing.T) {
	got := attributes(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, []attribute.KeyValue{attribute.String("a", "1"), attribute.String("b", "2")}, got)
	assert.Empty(t, attributes(nil))
}
