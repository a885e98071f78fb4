package engine

import (
	"wireworld/internal/core"
	"wireworld/internal/turbo"
	"wireworld/internal/wireworld"
)

// Render is the outbound snapshot. Positions are grid indices; any in-bounds
// position listed in neither set is a conductor or dead per the grid model.
type Render struct {
	Generation      uint64 `json:"generation"`
	SimulationSpeed int64  `json:"simulationSpeed"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	HeadPositions   []int  `json:"headPositions"`
	TailPositions   []int  `json:"tailPositions"`
}

// Turbo reports whether the snapshot was taken while turbo was running.
func (r Render) Turbo() bool { return r.SimulationSpeed != turbo.SpeedNotRunning }

// GenerationText formats the generation with digit grouping.
func (r Render) GenerationText() string {
	return core.GroupDigits(int64(r.Generation))
}

// SpeedText formats generations per second, or "---" outside turbo.
func (r Render) SpeedText() string {
	if !r.Turbo() {
		return "---"
	}
	return core.GroupDigits(r.SimulationSpeed)
}

// Resume returns the resume snapshot equivalent of r.
func (r Render) Resume() wireworld.Resume {
	return wireworld.Resume{
		Generation:    r.Generation,
		HeadPositions: append([]int(nil), r.HeadPositions...),
		TailPositions: append([]int(nil), r.TailPositions...),
	}
}

// Parameters reports the snapshot for display.
func (r Render) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Simulation",
			Params: []core.Parameter{
				core.TextParam("generation", "Generation", r.GenerationText()),
				core.TextParam("speed", "Speed", r.SpeedText()),
				core.BoolParam("turbo", "Turbo", r.Turbo()),
			},
		},
		{
			Name: "Signals",
			Params: []core.Parameter{
				core.IntParam("heads", "Heads", int64(len(r.HeadPositions))),
				core.IntParam("tails", "Tails", int64(len(r.TailPositions))),
			},
		},
	}}
}
