package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewLoggerWithWriters("escrow-service", &out, &errOut)

	log.Info(Entry{
		Action:  "ride_booked",
		Message: "Airport",
		RideID:  "0",
		Additional: map[string]any{
			"fare": 1000,
		},
	})

	require.Empty(t, errOut.String())

	var entry Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "escrow-service", entry.Service)
	assert.Equal(t, "ride_booked", entry.Action)
	assert.Equal(t, "0", entry.RideID)
	assert.NotEmpty(t, entry.Timestamp)
	assert.Equal(t, float64(1000), entry.Additional["fare"])
}

func TestErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewLoggerWithWriters("escrow-service", &out, &errOut)

	log.Error(Entry{
		Action: "usecase_error",
		Error:  &ErrObj{Msg: "boom"},
	})

	assert.Empty(t, out.String())

	var entry Entry
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	require.NotNil(t, entry.Error)
	assert.Equal(t, "boom", entry.Error.Msg)
}

func TestMinLevelFilters(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewLoggerWithWriters("escrow-service", &out, &errOut)
	log.minLevel = LevelWarn

	log.Debug(Entry{Action: "noise"})
	log.Info(Entry{Action: "noise"})
	assert.Empty(t, out.String())

	log.Warn(Entry{Action: "signal"})
	assert.NotEmpty(t, out.String())
}

func TestWithContext(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewLoggerWithWriters("escrow-service", &out, &errOut)

	ctxLog := log.WithContext("req-1", "7")
	ctxLog.Info(Entry{Action: "ride_completed"})

	var entry Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "7", entry.RideID)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}
