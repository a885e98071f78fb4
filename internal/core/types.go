package core

import (
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// State enumerates the Wireworld cell states. The zero value is Dead so an
// unset grid position reads as empty space.
type State uint8

const (
	// Dead marks a position with no cell.
	Dead State = iota
	// Conductor carries current and becomes a head next to one or two heads.
	Conductor
	// Head is the leading edge of a signal.
	Head
	// Tail is the trailing edge of a signal.
	Tail
)

// Valid reports whether s is one of the known states.
func (s State) Valid() bool { return s <= Tail }

func (s State) String() string {
	switch s {
	case Dead:
		return "dead"
	case Conductor:
		return "conductor"
	case Head:
		return "head"
	case Tail:
		return "tail"
	}
	return "invalid"
}

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Decoder parses a circuit description into a load-time grid.
type Decoder func(r io.Reader) (*Grid, error)

var decoders = map[string]Decoder{}

// Register adds a circuit decoder for the given file extension (".mcl").
func Register(ext string, d Decoder) {
	if ext == "" || d == nil {
		return
	}
	decoders[strings.ToLower(ext)] = d
}

// Decoders lists the registered file extensions in sorted order.
func Decoders() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DecoderFor returns the decoder registered for the extension of path.
func DecoderFor(path string) (Decoder, bool) {
	d, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return d, ok
}
