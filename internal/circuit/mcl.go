package circuit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wireworld/internal/core"
)

// ErrNotWireworld is returned for MCell files describing another rule.
var ErrNotWireworld = errors.New("not a Wireworld MCell file")

// DecodeMCL parses an MCell file. Board size comes from "#BOARD WxH" when
// present, otherwise from the extent of the pattern. Pattern data lives in
// "#L" lines as run-length encoded rows: '.' dead, 'A' head, 'B' tail,
// 'C' conductor, '$' row break, a decimal prefix repeats the next symbol.
func DecodeMCL(r io.Reader) (*core.Grid, error) {
	var (
		w, h    int
		pattern strings.Builder
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "#GAME"):
			game := strings.TrimSpace(strings.TrimPrefix(line, "#GAME"))
			if !strings.EqualFold(game, "wireworld") {
				return nil, fmt.Errorf("mcl line %d: %w: %q", lineNo, ErrNotWireworld, game)
			}
		case strings.HasPrefix(line, "#BOARD"):
			dims := strings.TrimSpace(strings.TrimPrefix(line, "#BOARD"))
			parts := strings.Split(strings.ToLower(dims), "x")
			if len(parts) != 2 {
				return nil, fmt.Errorf("mcl line %d: %w: board %q", lineNo, core.ErrInvalidSize, dims)
			}
			var err1, err2 error
			w, err1 = strconv.Atoi(parts[0])
			h, err2 = strconv.Atoi(parts[1])
			if err := errors.Join(err1, err2); err != nil {
				return nil, fmt.Errorf("mcl line %d: %w: board %q: %v", lineNo, core.ErrInvalidSize, dims, err)
			}
		case strings.HasPrefix(line, "#L"):
			pattern.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "#L")))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mcl: %w", err)
	}

	rows, err := decodeRLE(pattern.String())
	if err != nil {
		return nil, err
	}
	if w == 0 && h == 0 {
		h = len(rows)
		for _, row := range rows {
			if len(row) > w {
				w = len(row)
			}
		}
	}
	g, err := core.GridFromRows(w, h, rows)
	if err != nil {
		return nil, fmt.Errorf("mcl: %w", err)
	}
	return g, nil
}

func decodeRLE(data string) ([][]core.State, error) {
	rows := [][]core.State{nil}
	count := 0
	for i := 0; i < len(data); i++ {
		ch := data[i]
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			continue
		}
		n := count
		if n == 0 {
			n = 1
		}
		count = 0

		var s core.State
		switch ch {
		case '$':
			for j := 0; j < n; j++ {
				rows = append(rows, nil)
			}
			continue
		case '.':
			s = core.Dead
		case 'A':
			s = core.Head
		case 'B':
			s = core.Tail
		case 'C':
			s = core.Conductor
		case ' ', '\t':
			continue
		default:
			return nil, fmt.Errorf("mcl pattern offset %d: %w %q", i, core.ErrInvalidState, ch)
		}
		last := len(rows) - 1
		for j := 0; j < n; j++ {
			rows[last] = append(rows[last], s)
		}
	}
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func init() {
	core.Register(".mcl", DecodeMCL)
}
