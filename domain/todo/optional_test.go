package todo

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DecodeStates(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantNull    bool
		wantValue   string
	}{
		{name: "absent", body: `{}`},
		{name: "explicit null", body: `{"title":null}`, wantPresent: true, wantNull: true},
		{name: "value", body: `{"title":"Buy milk"}`, wantPresent: true, wantValue: "Buy milk"},
		{name: "empty string is a value", body: `{"title":""}`, wantPresent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantPresent, req.Title.IsPresent())
			assert.Equal(t, tt.wantNull, req.Title.IsNull())

			v, ok := req.Title.Get()
			assert.Equal(t, tt.wantPresent && !tt.wantNull, ok)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestOptional_InvalidValue(t *testing.T) {
	var req UpdateRequest
	err := json.Unmarshal([]byte(`{"isComplete":"yes"}`), &req)
	assert.Error(t, err)
}

// UpdateRequest crosses the module boundary as JSON; absent and null must
// still be distinguishable on the other side.
func TestUpdateRequest_SurvivesReencoding(t *testing.T) {
	completedOn := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := UpdateRequest{
		IsComplete:  Some(true),
		CompleteBy:  Null[time.Time](),
		CompletedOn: Some(completedOn),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isComplete":true,"completeBy":null,"completedOn":"2024-01-01T00:00:00Z"}`, string(data))

	var out UpdateRequest
	require.NoError(t, json.Unmarshal(data, &out))

	assert.False(t, out.Title.IsPresent())
	assert.True(t, out.CompleteBy.IsNull())
	got, ok := out.CompletedOn.Get()
	require.True(t, ok)
	assert.True(t, completedOn.Equal(got))
	isComplete, ok := out.IsComplete.Get()
	require.True(t, ok)
	assert.True(t, isComplete)
}

func TestItem_JSONShape(t *testing.T) {
	item := Item{ID: 1, Title: "Buy milk", UserID: "user-1"}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"title":"Buy milk","isComplete":false,"completeBy":null,"completedOn":null}`, string(data))
}
