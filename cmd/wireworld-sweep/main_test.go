package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireworld/internal/turbo"
)

func TestRunScenario(t *testing.T) {
	sc := scenario{width: 32, height: 16, density: 0.5, seed: 7}
	res := runScenario(sc, 20, 3, time.Second)
	require.NoError(t, res.err)

	assert.Positive(t, res.cells)
	assert.GreaterOrEqual(t, res.generation, uint64(20+3*turbo.StepsPerBurst))
	assert.GreaterOrEqual(t, res.burst, 1)
}

func TestRunScenarioReportsBadSize(t *testing.T) {
	res := runScenario(scenario{width: 0, height: 4, density: 0.5, seed: 1}, 1, 1, time.Second)
	assert.Error(t, res.err)
}
