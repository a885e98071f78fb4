package core

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestPacerFiresAtConfiguredRate(t *testing.T) {
	clk := clock.NewMock()
	p := NewPacerWithClock(10, clk)

	assert.True(t, p.Due(), "first call is due immediately")
	assert.False(t, p.Due())

	clk.Add(50 * time.Millisecond)
	assert.False(t, p.Due())

	clk.Add(50 * time.Millisecond)
	assert.True(t, p.Due())
	assert.False(t, p.Due())
}

func TestPacerCapsBacklog(t *testing.T) {
	clk := clock.NewMock()
	p := NewPacerWithClock(10, clk)
	p.Due()

	clk.Add(time.Second)
	fired := 0
	for i := 0; i < 20; i++ {
		if p.Due() {
			fired++
		}
	}
	assert.Equal(t, 2, fired)
}

func TestPacerDefaultsInvalidRate(t *testing.T) {
	p := NewPacerWithClock(0, clock.NewMock())
	assert.Equal(t, 60, p.TPS())
	p.SetTPS(25)
	assert.Equal(t, 25, p.TPS())
}
