package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"wireworld/internal/core"
)

// Plain-text circuits use one character per position: '#' conductor, '@'
// head, '~' tail, '.' or space dead. Lines starting with ';' are comments.
const (
	textConductor = '#'
	textHead      = '@'
	textTail      = '~'
	textComment   = ";"
)

// DecodeText parses a plain-text circuit.
func DecodeText(r io.Reader) (*core.Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	w := 0
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, textComment) {
			continue
		}
		lines = append(lines, line)
		if len(line) > w {
			w = len(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text circuit: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	g, err := core.NewGrid(w, len(lines))
	if err != nil {
		return nil, fmt.Errorf("text circuit: %w", err)
	}
	for y, line := range lines {
		for x := 0; x < len(line); x++ {
			var s core.State
			switch line[x] {
			case textConductor:
				s = core.Conductor
			case textHead:
				s = core.Head
			case textTail:
				s = core.Tail
			case '.', ' ':
				continue
			default:
				return nil, fmt.Errorf("text circuit line %d column %d: %w %q", y+1, x+1, core.ErrInvalidState, line[x])
			}
			g.Cells()[g.Index(x, y)] = s
		}
	}
	return g, nil
}

// EncodeText writes g in the plain-text format.
func EncodeText(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.H; y++ {
		row := make([]byte, g.W)
		for x := range row {
			switch g.At(x, y) {
			case core.Conductor:
				row[x] = textConductor
			case core.Head:
				row[x] = textHead
			case core.Tail:
				row[x] = textTail
			default:
				row[x] = '.'
			}
		}
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func init() {
	core.Register(".txt", DecodeText)
	core.Register(".ww", DecodeText)
}
