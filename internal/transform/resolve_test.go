package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		rowValue string
		override string
		want     string
	}{
		{"row wins", "EUR", "USD", "EUR"},
		{"override fills gap", "", "USD", "USD"},
		{"both empty", "", "", ""},
		{"row only", "EUR", "", "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.rowValue, tt.override))
		})
	}
}

func TestRowResolver(t *testing.T) {
	r := row("currency", "EUR", "headerText", "")
	resolve := rowResolver(r, map[string]string{
		"currency":   "USD",
		"headerText": "from override",
		"type":       "FI",
	})

	assert.Equal(t, "EUR", resolve("currency"), "cell beats override")
	assert.Equal(t, "from override", resolve("headerText"), "empty cell falls back")
	assert.Equal(t, "FI", resolve("type"), "absent column falls back")
	assert.Empty(t, resolve("documentType"))
}

func TestOverrideResolver(t *testing.T) {
	resolve := overrideResolver(map[string]string{"currency": "EUR"})
	assert.Equal(t, "EUR", resolve("currency"))
	assert.Empty(t, resolve("externalId"))
}
