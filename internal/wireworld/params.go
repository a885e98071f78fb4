package wireworld

import "wireworld/internal/core"

// Parameters reports grid and signal statistics for display.
func (s *Sim) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", int64(s.w)),
				core.IntParam("h", "Height", int64(s.h)),
				core.IntParam("cells", "Cells", int64(len(s.cells))),
			},
		},
		{
			Name: "Signals",
			Params: []core.Parameter{
				core.TextParam("generation", "Generation", core.GroupDigits(int64(s.generation))),
				core.IntParam("heads", "Heads", int64(len(s.heads))),
				core.IntParam("tails", "Tails", int64(len(s.tails))),
			},
		},
	}}
}
