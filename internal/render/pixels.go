package render

import (
	"image/color"

	"wireworld/internal/core"
)

// Palette maps each cell state to a colour.
type Palette [core.Tail + 1]color.RGBA

// DefaultPalette is the board's dark-green look.
var DefaultPalette = Palette{
	core.Dead:      {R: 0x22, G: 0x44, B: 0x00, A: 0xff},
	core.Conductor: {R: 0x44, G: 0x88, B: 0x22, A: 0xff},
	core.Head:      {R: 0xff, G: 0xff, B: 0x44, A: 0xff},
	core.Tail:      {R: 0xff, G: 0xdd, B: 0x22, A: 0xff},
}

// Frame composes RGBA pixels from a static base layer (dead vs conductor)
// and per-snapshot head and tail positions.
type Frame struct {
	w, h    int
	palette Palette
	base    []byte
	buf     []byte
}

// NewFrame paints the base layer for g. Every live position starts out in
// the conductor colour; signals are drawn per snapshot.
func NewFrame(g *core.Grid, p Palette) *Frame {
	f := &Frame{
		w:       g.W,
		h:       g.H,
		palette: p,
		base:    make([]byte, 4*g.W*g.H),
		buf:     make([]byte, 4*g.W*g.H),
	}
	fillBaseRGBA(f.base, g.Cells(), p)
	copy(f.buf, f.base)
	return f
}

// Size returns the frame dimensions in pixels.
func (f *Frame) Size() (int, int) { return f.w, f.h }

// Compose redraws the frame for the given head and tail positions and returns
// the pixel buffer. Out-of-range positions are skipped.
func (f *Frame) Compose(heads, tails []int) []byte {
	copy(f.buf, f.base)
	fillPositions(f.buf, tails, f.palette[core.Tail])
	fillPositions(f.buf, heads, f.palette[core.Head])
	return f.buf
}

// Pixels returns the most recently composed buffer.
func (f *Frame) Pixels() []byte { return f.buf }

// fillBaseRGBA converts load-time states into base-layer pixels.
func fillBaseRGBA(buf []byte, cells []core.State, p Palette) {
	for i, c := range cells {
		col := p[core.Dead]
		if c != core.Dead {
			col = p[core.Conductor]
		}
		setPixel(buf, i, col)
	}
}

func fillPositions(buf []byte, positions []int, col color.RGBA) {
	n := len(buf) / 4
	for _, pos := range positions {
		if pos < 0 || pos >= n {
			continue
		}
		setPixel(buf, pos, col)
	}
}

func setPixel(buf []byte, i int, col color.RGBA) {
	base := i * 4
	buf[base+0] = col.R
	buf[base+1] = col.G
	buf[base+2] = col.B
	buf[base+3] = col.A
}
