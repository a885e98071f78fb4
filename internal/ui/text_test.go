package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wireworld/internal/core"
)

func TestPanelLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Simulation", Params: []core.Parameter{core.TextParam("generation", "Generation", "1,024")}},
		{Name: "Signals", Params: []core.Parameter{core.IntParam("heads", "Heads", 3)}},
	}}
	assert.Equal(t, []string{
		"clock.mcl",
		"",
		"SIMULATION",
		"Generation: 1,024",
		"",
		"SIGNALS",
		"Heads: 3",
	}, PanelLines("clock.mcl", snap))
}
