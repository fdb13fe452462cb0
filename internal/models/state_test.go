package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserState_GettersAfterJSONRoundTrip(t *testing.T) {
	state := &UserState{
		UserID:      42,
		CurrentStep: StateAwaitPhone,
		TempData: map[string]interface{}{
			"full_name": "Иван Иванов",
			"user_id":   int64(7),
			"latitude":  41.311081,
		},
	}

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var restored UserState
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, "Иван Иванов", restored.GetString("full_name"))
	// json decodes numbers into float64
	assert.Equal(t, int64(7), restored.GetInt64("user_id"))

	lat, ok := restored.GetFloat64("latitude")
	assert.True(t, ok)
	assert.InDelta(t, 41.311081, lat, 1e-9)
}

func TestUserState_GettersMissingKeys(t *testing.T) {
	state := &UserState{UserID: 1}

	assert.Equal(t, "", state.GetString("nope"))
	assert.Equal(t, int64(0), state.GetInt64("nope"))
	_, ok := state.GetFloat64("nope")
	assert.False(t, ok)
	assert.True(t, state.GetTime("nope").IsZero())
}

func TestBrowseCursor_AdvanceCyclic(t *testing.T) {
	cursor := &BrowseCursor{
		UserID: 1,
		Orders: []Order{{ID: 1}, {ID: 2}, {ID: 3}},
	}

	cursor.Advance(true)
	assert.Equal(t, 1, cursor.Index)
	cursor.Advance(true)
	cursor.Advance(true)
	assert.Equal(t, 0, cursor.Index, "forward wraps around")

	cursor.Advance(false)
	assert.Equal(t, 2, cursor.Index, "backward wraps around")

	require.NotNil(t, cursor.Current())
	assert.Equal(t, int64(3), cursor.Current().ID)
}

func TestBrowseCursor_SingleOrder(t *testing.T) {
	cursor := &BrowseCursor{Orders: []Order{{ID: 9}}}

	cursor.Advance(true)
	assert.Equal(t, 0, cursor.Index)
	cursor.Advance(false)
	assert.Equal(t, 0, cursor.Index)
}

func TestBrowseCursor_Empty(t *testing.T) {
	cursor := &BrowseCursor{}

	cursor.Advance(true)
	assert.Equal(t, 0, cursor.Index)
	assert.Nil(t, cursor.Current())
}

func TestOrder_HasLocation(t *testing.T) {
	lat, lon := 41.3, 69.2

	assert.False(t, (&Order{}).HasLocation())
	assert.False(t, (&Order{Latitude: &lat}).HasLocation())
	assert.True(t, (&Order{Latitude: &lat, Longitude: &lon}).HasLocation())
}
