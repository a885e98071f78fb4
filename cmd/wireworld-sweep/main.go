package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"wireworld/internal/circuit"
	"wireworld/internal/core"
	"wireworld/internal/turbo"
	"wireworld/internal/wireworld"
)

type scenario struct {
	width   int
	height  int
	density float64
	seed    int64
}

func (s scenario) String() string {
	return fmt.Sprintf("%dx%d density=%.2f seed=%d", s.width, s.height, s.density, s.seed)
}

type scenarioResult struct {
	scenario   scenario
	cells      int
	generation uint64
	headPeak   int
	finalHeads int
	finalTails int
	burst      int
	speed      float64
	err        error
}

func main() {
	steps := flag.Int("steps", 200, "single steps per scenario before the turbo batches")
	batches := flag.Int("batches", 12, "turbo batches per scenario")
	budget := flag.Duration("budget", 20*time.Millisecond, "per-batch time budget")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	sizes := []struct{ w, h int }{
		{w: 64, h: 64},
		{w: 256, h: 256},
		{w: 1024, h: 512},
	}
	densities := []float64{0.2, 0.4, 0.6}
	seeds := []int64{1337, 4242}

	var sets []scenario
	for _, size := range sizes {
		for _, density := range densities {
			for _, seed := range seeds {
				sets = append(sets, scenario{width: size.w, height: size.h, density: density, seed: seed})
			}
		}
	}

	fmt.Printf("Sweeping %d circuits (%d workers, %d steps, %d batches)\n", len(sets), *workers, *steps, *batches)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *steps, *batches, *budget)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	failures := 0
	for res := range results {
		if res.err != nil {
			failures++
			fmt.Printf("FAIL %s: %v\n", res.scenario, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].speed > all[j].speed })
	elapsed := time.Since(start)

	fmt.Printf("\nResults by throughput (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) %s cells=%s gen=%s gen/s=%s burst=%d heads peak=%d final=%d tails=%d\n",
			i+1, res.scenario, core.GroupDigits(int64(res.cells)), core.GroupDigits(int64(res.generation)),
			core.GroupDigits(int64(res.speed)), res.burst, res.headPeak, res.finalHeads, res.finalTails)
	}
	if failures > 0 {
		fmt.Printf("\n%d scenario(s) failed\n", failures)
	}
}

// runScenario steps a random circuit one generation at a time, checking the
// cell invariants after each step, then runs turbo batches to find the
// settled burst and raw throughput.
func runScenario(sc scenario, steps, batches int, budget time.Duration) scenarioResult {
	res := scenarioResult{scenario: sc}

	grid, err := circuit.Random(sc.width, sc.height, sc.seed, sc.density)
	if err != nil {
		res.err = err
		return res
	}
	sim, err := wireworld.Build(grid)
	if err != nil {
		res.err = err
		return res
	}
	res.cells = sim.NumCells()

	for step := 0; step < steps; step++ {
		sim.Step()
		if err := sim.CheckInvariants(); err != nil {
			res.err = fmt.Errorf("generation %d: %w", sim.Generation(), err)
			return res
		}
		if n := sim.NumHeads(); n > res.headPeak {
			res.headPeak = n
		}
	}

	sched := turbo.New(turbo.WithBudget(budget))
	sched.Start(sim.Generation())
	startGen := sim.Generation()
	start := time.Now()
	for i := 0; i < batches; i++ {
		sched.Tick(sim.Step)
	}
	elapsed := time.Since(start)
	sched.Stop()

	if err := sim.CheckInvariants(); err != nil {
		res.err = fmt.Errorf("generation %d: %w", sim.Generation(), err)
		return res
	}
	res.generation = sim.Generation()
	res.finalHeads = sim.NumHeads()
	res.finalTails = sim.NumTails()
	res.burst = sched.Burst()
	if elapsed > 0 {
		res.speed = float64(sim.Generation()-startGen) / elapsed.Seconds()
	}
	return res
}
