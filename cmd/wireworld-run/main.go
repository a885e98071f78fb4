package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"wireworld/internal/app"
	"wireworld/internal/circuit"
	"wireworld/internal/core"
	"wireworld/internal/engine"
	"wireworld/internal/wireworld"
)

const pollInterval = 5 * time.Millisecond

func main() {
	circuitPath := flag.String("circuit", "", "circuit file to load (.mcl, .txt, .ww)")
	resumePath := flag.String("resume", "", "resume snapshot JSON to start from")
	width := flag.Int("width", 0, "generate a random circuit of this width instead of loading one")
	height := flag.Int("height", 0, "height of the random circuit")
	seed := flag.Int64("seed", 1337, "seed for the random circuit")
	density := flag.Float64("density", 0.4, "live-cell density of the random circuit")
	steps := flag.Int("steps", 0, "generations to advance one at a time")
	turboFor := flag.Duration("turbo", 0, "run turbo for this long after stepping")
	report := flag.Duration("report", time.Second, "progress report interval during turbo")
	savePath := flag.String("save", "", "write the final resume snapshot to this file")
	boardPath := flag.String("board", "", "write the final board in the plain-text circuit format to this file")
	dev := flag.Bool("dev", false, "human-readable debug logging")
	flag.Parse()

	logger, err := app.NewLogger(*dev)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var (
		grid   *core.Grid
		resume *wireworld.Resume
	)
	if *width > 0 {
		grid, err = circuit.Random(*width, *height, *seed, *density)
	} else {
		grid, resume, err = app.Load(*circuitPath, *resumePath)
	}
	if err != nil {
		logger.Fatal("load circuit", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := &engine.Latest{}
	eng := engine.New(events, engine.WithLogger(logger.Named("engine")))
	go eng.Run(ctx)

	final, err := run(ctx, eng, events, grid, resume, *steps, *turboFor, *report)
	if err != nil {
		logger.Fatal("run", zap.Error(err))
	}

	fmt.Printf("generation %s, %d heads, %d tails\n", final.GenerationText(), len(final.HeadPositions), len(final.TailPositions))

	if *savePath != "" {
		err := writeFile(*savePath, func(f *os.File) error { return wireworld.WriteResume(f, final.Resume()) })
		if err != nil {
			logger.Fatal("save snapshot", zap.Error(err))
		}
		logger.Info("snapshot saved", zap.String("path", *savePath), zap.Uint64("generation", final.Generation))
	}
	if *boardPath != "" {
		board, err := finalBoard(grid, final)
		if err != nil {
			logger.Fatal("save board", zap.Error(err))
		}
		if err := writeFile(*boardPath, func(f *os.File) error { return circuit.EncodeText(f, board) }); err != nil {
			logger.Fatal("save board", zap.Error(err))
		}
		logger.Info("board saved", zap.String("path", *boardPath), zap.Uint64("generation", final.Generation))
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// finalBoard lays the head and tail positions of r over the live cells of
// grid. Every other live cell is a conductor.
func finalBoard(grid *core.Grid, r engine.Render) (*core.Grid, error) {
	board, err := core.NewGrid(grid.W, grid.H)
	if err != nil {
		return nil, err
	}
	cells := board.Cells()
	for i, s := range grid.Cells() {
		if s != core.Dead {
			cells[i] = core.Conductor
		}
	}
	for _, list := range []struct {
		positions []int
		state     core.State
	}{{r.HeadPositions, core.Head}, {r.TailPositions, core.Tail}} {
		for _, p := range list.positions {
			if p < 0 || p >= len(cells) || cells[p] == core.Dead {
				return nil, fmt.Errorf("%w: position %d is not a cell", core.ErrInvalidState, p)
			}
			cells[p] = list.state
		}
	}
	return board, nil
}

func run(ctx context.Context, eng *engine.Engine, events *engine.Latest, grid *core.Grid, resume *wireworld.Resume, steps int, turboFor, report time.Duration) (engine.Render, error) {
	if err := eng.Send(ctx, engine.Initialize(grid, resume)); err != nil {
		return engine.Render{}, err
	}
	current, err := waitRenders(ctx, events, 1)
	if err != nil {
		return engine.Render{}, err
	}
	fmt.Printf("loaded %dx%d circuit at generation %s\n", current.Width, current.Height, current.GenerationText())

	if steps > 0 {
		_, seen := events.Peek()
		for i := 0; i < steps; i++ {
			if err := eng.Send(ctx, engine.Advance()); err != nil {
				return engine.Render{}, err
			}
		}
		start := time.Now()
		if current, err = waitRenders(ctx, events, seen+uint64(steps)); err != nil {
			return engine.Render{}, err
		}
		fmt.Printf("stepped %d generations in %v\n", steps, time.Since(start).Round(time.Millisecond))
	}

	if turboFor > 0 {
		if err := eng.Send(ctx, engine.StartTurbo()); err != nil {
			return engine.Render{}, err
		}
		deadline := time.After(turboFor)
		ticker := time.NewTicker(report)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				return engine.Render{}, ctx.Err()
			case <-ticker.C:
				r, _ := events.Peek()
				fmt.Printf("generation %s at %s gen/s\n", r.GenerationText(), r.SpeedText())
			case <-deadline:
				break loop
			}
		}
		_, seen := events.Peek()
		if err := eng.Send(ctx, engine.StopTurbo()); err != nil {
			return engine.Render{}, err
		}
		if current, err = waitStopped(ctx, events, seen); err != nil {
			return engine.Render{}, err
		}
	}
	return current, nil
}

// waitRenders blocks until at least n renders have been emitted in total and
// returns the latest one.
func waitRenders(ctx context.Context, events *engine.Latest, n uint64) (engine.Render, error) {
	return waitFor(ctx, events, func(_ engine.Render, seen uint64) bool { return seen >= n })
}

// waitStopped blocks until a render newer than the first seen ones reports
// that turbo is off. The stop render is the last one the engine emits, so it
// stays the latest once recorded.
func waitStopped(ctx context.Context, events *engine.Latest, seen uint64) (engine.Render, error) {
	return waitFor(ctx, events, func(r engine.Render, n uint64) bool { return n > seen && !r.Turbo() })
}

func waitFor(ctx context.Context, events *engine.Latest, done func(engine.Render, uint64) bool) (engine.Render, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if err := events.Err(); err != nil {
			return engine.Render{}, err
		}
		if r, seen := events.Peek(); done(r, seen) {
			return r, nil
		}
		select {
		case <-ctx.Done():
			return engine.Render{}, errors.Join(ctx.Err(), errors.New("engine produced no render"))
		case <-ticker.C:
		}
	}
}
