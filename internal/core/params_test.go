package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", GroupDigits(0))
	assert.Equal(t, "999", GroupDigits(999))
	assert.Equal(t, "1,234,567", GroupDigits(1234567))
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{IntParam("w", "Width", 12)}},
		{Name: "Run", Params: []Parameter{BoolParam("turbo", "Turbo", true)}},
	}}
	p, ok := snap.Lookup("turbo")
	assert.True(t, ok)
	assert.Equal(t, "true", p.Value)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}
