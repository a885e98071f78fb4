//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"wireworld/internal/core"
)

// GridPainter uploads composed frames into a single image and draws it.
type GridPainter struct {
	frame *Frame
	img   *ebiten.Image
}

// NewGridPainter allocates a painter for the grid's dimensions.
func NewGridPainter(g *core.Grid, p Palette) *GridPainter {
	gp := &GridPainter{frame: NewFrame(g, p)}
	gp.img = ebiten.NewImage(g.W, g.H)
	gp.img.WritePixels(gp.frame.Pixels())
	return gp
}

// Update composes the given signal positions into the painter image.
func (gp *GridPainter) Update(heads, tails []int) {
	gp.img.WritePixels(gp.frame.Compose(heads, tails))
}

// Blit draws the current image scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.frame.Size() }
