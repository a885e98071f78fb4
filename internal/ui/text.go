package ui

import (
	"fmt"
	"strings"

	"wireworld/internal/core"
)

// HelpLines lists the key bindings shown by the help overlay.
var HelpLines = []string{
	"Space  play / pause",
	".      advance one generation",
	"T      toggle turbo",
	"R      reset to the loaded circuit",
	"[ ]    slower / faster play",
	"H      toggle this help",
	"Q Esc  quit",
}

// PanelLines flattens a parameter snapshot into display lines, one group
// heading followed by "label: value" rows.
func PanelLines(title string, snap core.ParameterSnapshot) []string {
	lines := []string{title}
	for _, g := range snap.Groups {
		lines = append(lines, "", strings.ToUpper(g.Name))
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
	return lines
}
