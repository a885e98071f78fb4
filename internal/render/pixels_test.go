package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireworld/internal/core"
)

func pixel(buf []byte, i int) color.RGBA {
	return color.RGBA{R: buf[i*4], G: buf[i*4+1], B: buf[i*4+2], A: buf[i*4+3]}
}

func TestFrameLayers(t *testing.T) {
	g, err := core.GridFromRows(4, 1, [][]core.State{{core.Head, core.Tail, core.Conductor, core.Dead}})
	require.NoError(t, err)

	f := NewFrame(g, DefaultPalette)
	buf := f.Pixels()
	for i, want := range []core.State{core.Conductor, core.Conductor, core.Conductor, core.Dead} {
		assert.Equal(t, DefaultPalette[want], pixel(buf, i), "base pixel %d", i)
	}

	buf = f.Compose([]int{2}, []int{1, 99, -4})
	assert.Equal(t, DefaultPalette[core.Conductor], pixel(buf, 0))
	assert.Equal(t, DefaultPalette[core.Tail], pixel(buf, 1))
	assert.Equal(t, DefaultPalette[core.Head], pixel(buf, 2))
	assert.Equal(t, DefaultPalette[core.Dead], pixel(buf, 3))

	buf = f.Compose(nil, nil)
	assert.Equal(t, DefaultPalette[core.Conductor], pixel(buf, 2), "previous signals are cleared")

	w, h := f.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 1, h)
}
