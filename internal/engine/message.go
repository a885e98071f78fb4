package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"wireworld/internal/core"
	"wireworld/internal/wireworld"
)

// EventRender and EventError name outbound messages.
const (
	EventRender = "render"
	EventError  = "error"
)

// ErrMalformedMessage is returned for undecodable wire messages.
var ErrMalformedMessage = errors.New("malformed message")

// Message is the wire envelope shared by commands and events:
// {"type": "...", "args": [...]}.
type Message struct {
	Type string            `json:"type"`
	Args []json.RawMessage `json:"args,omitempty"`
}

// Wire cell codes, as numbered by the browser host.
const (
	wireHead      = 0
	wireTail      = 1
	wireConductor = 2
	wireDead      = 3
)

var (
	wireToState = [...]core.State{
		wireHead:      core.Head,
		wireTail:      core.Tail,
		wireConductor: core.Conductor,
		wireDead:      core.Dead,
	}
	stateToWire = [...]int{
		core.Dead:      wireDead,
		core.Conductor: wireConductor,
		core.Head:      wireHead,
		core.Tail:      wireTail,
	}
)

// GridSpec is the wire form of load data. Cell codes are 0 head, 1 tail,
// 2 conductor and 3 dead. Rows may be short or null; null entries are dead.
type GridSpec struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	CellStates [][]*int `json:"cellStates"`
}

// Grid validates the spec and converts it into a load-time grid.
func (s GridSpec) Grid() (*core.Grid, error) {
	rows := make([][]core.State, len(s.CellStates))
	for y, row := range s.CellStates {
		if row == nil {
			continue
		}
		rows[y] = make([]core.State, len(row))
		for x, v := range row {
			switch {
			case v == nil:
				rows[y][x] = core.Dead
			case *v < 0 || *v >= len(wireToState):
				// Out-of-range values are reported by GridFromRows.
				rows[y][x] = core.State(255)
			default:
				rows[y][x] = wireToState[*v]
			}
		}
	}
	return core.GridFromRows(s.Width, s.Height, rows)
}

// SpecFromGrid converts a grid into its wire form.
func SpecFromGrid(g *core.Grid) GridSpec {
	spec := GridSpec{Width: g.W, Height: g.H, CellStates: make([][]*int, g.H)}
	for y := 0; y < g.H; y++ {
		row := make([]*int, g.W)
		for x := 0; x < g.W; x++ {
			if s := g.At(x, y); s != core.Dead {
				v := stateToWire[s]
				row[x] = &v
			}
		}
		spec.CellStates[y] = row
	}
	return spec
}

// DecodeCommand parses a wire message into a Command. Unknown command types
// decode without error and are ignored by the engine. An initialize whose
// grid spec or resume snapshot is unusable still decodes: the engine fails it,
// dropping the current model, and reports the reason as an error event.
func DecodeCommand(data []byte) (Command, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	cmd := Command{Type: Type(msg.Type)}
	switch cmd.Type {
	case TypeInitialize:
		cmd.Grid, cmd.Resume, cmd.invalid = decodeInitialize(msg.Args)
	case TypeReset:
		if len(msg.Args) > 0 {
			r, err := decodeResume(msg.Args[0])
			if err != nil {
				return Command{}, err
			}
			cmd.Resume = r
		}
	}
	return cmd, nil
}

func decodeInitialize(args []json.RawMessage) (*core.Grid, *wireworld.Resume, error) {
	if len(args) == 0 || isNull(args[0]) {
		return nil, nil, fmt.Errorf("%w: initialize requires a grid spec", ErrMalformedMessage)
	}
	var spec GridSpec
	if err := json.Unmarshal(args[0], &spec); err != nil {
		return nil, nil, fmt.Errorf("%w: grid spec: %v", ErrMalformedMessage, err)
	}
	grid, err := spec.Grid()
	if err != nil {
		return nil, nil, err
	}
	var resume *wireworld.Resume
	if len(args) > 1 {
		if resume, err = decodeResume(args[1]); err != nil {
			return nil, nil, err
		}
	}
	return grid, resume, nil
}

func decodeResume(raw json.RawMessage) (*wireworld.Resume, error) {
	if isNull(raw) {
		return nil, nil
	}
	var r wireworld.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: resume snapshot: %v", ErrMalformedMessage, err)
	}
	return &r, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// EncodeCommand builds the wire message for cmd.
func EncodeCommand(cmd Command) ([]byte, error) {
	var args []any
	switch cmd.Type {
	case TypeInitialize:
		if cmd.Grid == nil {
			return nil, fmt.Errorf("%w: initialize requires a grid", ErrMalformedMessage)
		}
		args = append(args, SpecFromGrid(cmd.Grid))
		if cmd.Resume != nil {
			args = append(args, cmd.Resume)
		}
	case TypeReset:
		if cmd.Resume != nil {
			args = append(args, cmd.Resume)
		}
	}
	return encode(string(cmd.Type), args...)
}

// EncodeRender builds the wire message for a render event.
func EncodeRender(r Render) ([]byte, error) {
	return encode(EventRender, r)
}

// EncodeError builds the wire message for an error event.
func EncodeError(err error) ([]byte, error) {
	return encode(EventError, err.Error())
}

// DecodeRender parses a render event.
func DecodeRender(data []byte) (Render, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Render{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if msg.Type != EventRender || len(msg.Args) != 1 {
		return Render{}, fmt.Errorf("%w: not a render event: %q", ErrMalformedMessage, msg.Type)
	}
	var r Render
	if err := json.Unmarshal(msg.Args[0], &r); err != nil {
		return Render{}, fmt.Errorf("%w: render: %v", ErrMalformedMessage, err)
	}
	return r, nil
}

func encode(typ string, args ...any) ([]byte, error) {
	msg := Message{Type: typ}
	for _, a := range args {
		raw, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		msg.Args = append(msg.Args, raw)
	}
	return json.Marshal(msg)
}
