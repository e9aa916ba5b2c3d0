package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChatState_Helpers(t *testing.T) {
	now := time.Now()
	state := &ChatState{
		SessionID: "sess-1",
		TempData: map[string]interface{}{
			"int64":  int64(123),
			"int":    123,
			"float":  123.45,
			"string": "hello",
			"time":   "2025-01-01T10:00:00Z",
			"time_t": now,
		},
	}

	t.Run("NilTempData", func(t *testing.T) {
		nilState := &ChatState{}
		assert.Equal(t, int64(0), nilState.GetInt64("any"))
		assert.Equal(t, "", nilState.GetString("any"))
		assert.True(t, nilState.GetTime("any").IsZero())
	})

	t.Run("GetInt64", func(t *testing.T) {
		assert.Equal(t, int64(123), state.GetInt64("int64"))
		assert.Equal(t, int64(123), state.GetInt64("int"))
		assert.Equal(t, int64(123), state.GetInt64("float"))
		assert.Equal(t, int64(0), state.GetInt64("string"))
		assert.Equal(t, int64(0), state.GetInt64("missing"))
	})

	t.Run("GetString", func(t *testing.T) {
		assert.Equal(t, "hello", state.GetString("string"))
		assert.Equal(t, "", state.GetString("int"))
		assert.Equal(t, "", state.GetString("missing"))
	})

	t.Run("GetTime", func(t *testing.T) {
		tm := state.GetTime("time")
		assert.False(t, tm.IsZero())
		assert.Equal(t, 2025, tm.Year())

		tm2 := state.GetTime("time_t")
		assert.Equal(t, now.Unix(), tm2.Unix())

		assert.True(t, state.GetTime("int").IsZero())
		assert.True(t, state.GetTime("string").IsZero())
	})
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusConfirmed))
}

func TestIsKnownRoomType(t *testing.T) {
	assert.True(t, IsKnownRoomType(RoomTypeStandard))
	assert.True(t, IsKnownRoomType(RoomTypePresidential))
	assert.False(t, IsKnownRoomType("penthouse"))
	assert.False(t, IsKnownRoomType(""))
}
