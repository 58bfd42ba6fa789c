package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "debug", "json")

	log.WithField("meter_id", "m-1").Info("reading recorded")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "reading recorded", line["msg"])
	assert.Equal(t, "m-1", line["meter_id"])
	assert.Contains(t, line, "timestamp")
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := newLogger(&bytes.Buffer{}, "loud", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestFromContext(t *testing.T) {
	log := NewTestLogger()

	entry := log.WithField("request_id", "abc")
	ctx := WithContext(context.Background(), entry)
	assert.Equal(t, "abc", log.FromContext(ctx).Data["request_id"])

	bare := log.FromContext(context.Background())
	assert.Empty(t, bare.Data)
}
