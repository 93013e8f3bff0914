package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDetails_Nil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetails_SyntaxError(t *testing.T) {
	var payload map[string]any
	err := json.Unmarshal([]byte("{not json"), &payload)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, details)
}

func TestToDetails_RequiredField(t *testing.T) {
	type req struct {
		Title string `validate:"required"`
	}
	v := validator.New()
	err := v.Struct(req{})
	require.Error(t, err)

	details := ToDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "is required", details["Title"])
}

func TestToDetails_Fallback(t *testing.T) {
	details := ToDetails(errors.New("something else"))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, details)
}
