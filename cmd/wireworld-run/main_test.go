package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireworld/internal/core"
	"wireworld/internal/engine"
	"wireworld/internal/turbo"
)

func ringGrid(t *testing.T) *core.Grid {
	t.Helper()
	g, err := core.GridFromRows(4, 3, [][]core.State{
		{core.Conductor, core.Head, core.Tail, core.Conductor},
		{core.Conductor, core.Dead, core.Dead, core.Conductor},
		{core.Conductor, core.Conductor, core.Conductor, core.Conductor},
	})
	require.NoError(t, err)
	return g
}

func TestWaitStoppedAcceptsRecordedStopRender(t *testing.T) {
	events := &engine.Latest{}
	events.Render(engine.Render{Generation: 6, SimulationSpeed: 120})
	_, seen := events.Peek()
	events.Render(engine.Render{Generation: 12, SimulationSpeed: turbo.SpeedNotRunning})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r, err := waitStopped(ctx, events, seen)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), r.Generation)
}

func TestWaitStoppedSkipsTurboRenders(t *testing.T) {
	events := &engine.Latest{}
	events.Render(engine.Render{Generation: 6, SimulationSpeed: 120})
	_, seen := events.Peek()
	events.Render(engine.Render{Generation: 12, SimulationSpeed: 120})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := waitStopped(ctx, events, seen)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunStepsThenTurbo(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := &engine.Latest{}
	eng := engine.New(events)
	go eng.Run(ctx)

	final, err := run(ctx, eng, events, ringGrid(t), nil, 3, 50*time.Millisecond, 10*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, final.Turbo())
	assert.Greater(t, final.Generation, uint64(3))
}

func TestRunReportsInitializeError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := &engine.Latest{}
	eng := engine.New(events)
	go eng.Run(ctx)

	_, err := run(ctx, eng, events, nil, nil, 1, 0, time.Second)
	assert.ErrorIs(t, err, core.ErrInvalidSize)
}

func TestFinalBoard(t *testing.T) {
	board, err := finalBoard(ringGrid(t), engine.Render{HeadPositions: []int{3}, TailPositions: []int{2}})
	require.NoError(t, err)
	assert.Equal(t, core.Conductor, board.At(1, 0))
	assert.Equal(t, core.Tail, board.At(2, 0))
	assert.Equal(t, core.Head, board.At(3, 0))
	assert.Equal(t, core.Dead, board.At(1, 1))

	_, err = finalBoard(ringGrid(t), engine.Render{HeadPositions: []int{5}})
	assert.ErrorIs(t, err, core.ErrInvalidState)
}
