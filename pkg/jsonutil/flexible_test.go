package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexibleString(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"integer float", float64(42), "42"},
		{"decimal float", 3.14, "3.14"},
		{"bool", true, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlexibleString(tt.input))
		})
	}
}

func TestFlexibleFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
		ok       bool
	}{
		{"float", 12.5, 12.5, true},
		{"numeric string", "99.95", 99.95, true},
		{"string with thousands separator", "1,250.00", 1250, true},
		{"empty string", "", 0, false},
		{"garbage string", "n/a", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FlexibleFloat(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFlexibleBool(t *testing.T) {
	assert.True(t, FlexibleBool(true))
	assert.True(t, FlexibleBool("true"))
	assert.True(t, FlexibleBool("True"))
	assert.True(t, FlexibleBool(float64(1)))
	assert.False(t, FlexibleBool(false))
	assert.False(t, FlexibleBool("no"))
	assert.False(t, FlexibleBool(nil))
}

func TestAsSlice(t *testing.T) {
	assert.Nil(t, AsSlice(nil))
	assert.Equal(t, []any{"a", "b"}, AsSlice([]any{"a", "b"}))
	assert.Equal(t, []any{"solo"}, AsSlice("solo"))

	obj := map[string]any{"Label": "Mobile"}
	assert.Equal(t, []any{obj}, AsSlice(obj))
}
