package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireworld/internal/core"
	"wireworld/internal/wireworld"
)

func TestDecodeInitialize(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{
		"type": "initialize",
		"args": [
			{"width": 3, "height": 2, "cellStates": [[2, 0, 3], [1, null]]},
			{"generation": 5, "headPositions": [0], "tailPositions": []}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, TypeInitialize, cmd.Type)
	require.NotNil(t, cmd.Grid)
	assert.Equal(t, core.Conductor, cmd.Grid.At(0, 0))
	assert.Equal(t, core.Head, cmd.Grid.At(1, 0))
	assert.Equal(t, core.Dead, cmd.Grid.At(2, 0))
	assert.Equal(t, core.Tail, cmd.Grid.At(0, 1))
	assert.Equal(t, core.Dead, cmd.Grid.At(1, 1))
	assert.Equal(t, core.Dead, cmd.Grid.At(2, 1))
	assert.Equal(t, &wireworld.Resume{Generation: 5, HeadPositions: []int{0}, TailPositions: []int{}}, cmd.Resume)
}

func TestDecodeInitializeCarriesBadGrid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []error
	}{
		{"bad cells", `{"type":"initialize","args":[{"width":2,"height":1,"cellStates":[[2,7,2]]}]}`, []error{core.ErrInvalidState, core.ErrColumnOutOfRange}},
		{"missing grid", `{"type":"initialize"}`, []error{ErrMalformedMessage}},
		{"grid not an object", `{"type":"initialize","args":[[1,2]]}`, []error{ErrMalformedMessage}},
		{"zero width", `{"type":"initialize","args":[{"width":0,"height":1}]}`, []error{core.ErrInvalidSize}},
		{"bad resume", `{"type":"initialize","args":[{"width":1,"height":1},"later"]}`, []error{ErrMalformedMessage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := DecodeCommand([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, TypeInitialize, cmd.Type)
			assert.Nil(t, cmd.Grid)
			assert.Nil(t, cmd.Resume)
			for _, want := range tt.want {
				assert.ErrorIs(t, cmd.invalid, want)
			}
		})
	}
}

func TestDecodeSimpleCommands(t *testing.T) {
	for _, typ := range []Type{TypeAdvance, TypeStartTurbo, TypeStopTurbo} {
		cmd, err := DecodeCommand([]byte(`{"type":"` + string(typ) + `"}`))
		require.NoError(t, err)
		assert.Equal(t, Command{Type: typ}, cmd)
	}

	cmd, err := DecodeCommand([]byte(`{"type":"reset","args":[null]}`))
	require.NoError(t, err)
	assert.Nil(t, cmd.Resume)

	cmd, err = DecodeCommand([]byte(`{"type":"reset","args":[{"generation":3,"headPositions":[1],"tailPositions":[2]}]}`))
	require.NoError(t, err)
	require.NotNil(t, cmd.Resume)
	assert.Equal(t, uint64(3), cmd.Resume.Generation)
}

func TestDecodeUnknownAndMalformed(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"type":"explode","args":[1,2]}`))
	require.NoError(t, err)
	assert.Equal(t, Type("explode"), cmd.Type)

	_, err = DecodeCommand([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestCommandEncodingRoundTrip(t *testing.T) {
	g, err := core.GridFromRows(2, 2, [][]core.State{{core.Head, core.Tail}, {core.Dead, core.Conductor}})
	require.NoError(t, err)

	data, err := EncodeCommand(Initialize(g, &wireworld.Resume{Generation: 2, HeadPositions: []int{3}}))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cellStates":[[0,1],[null,2]]`)
	cmd, err := DecodeCommand(data)
	require.NoError(t, err)
	assert.Equal(t, g.Cells(), cmd.Grid.Cells())
	assert.Equal(t, uint64(2), cmd.Resume.Generation)

	_, err = EncodeCommand(Command{Type: TypeInitialize})
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestRenderEvent(t *testing.T) {
	in := Render{Generation: 9, SimulationSpeed: -1, Width: 4, Height: 2, HeadPositions: []int{1}, TailPositions: []int{}}
	data, err := EncodeRender(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"render","args":[{"generation":9,"simulationSpeed":-1,"width":4,"height":2,"headPositions":[1],"tailPositions":[]}]}`, string(data))

	out, err := DecodeRender(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	data, err = EncodeError(core.ErrInvalidSize)
	require.NoError(t, err)
	_, err = DecodeRender(data)
	assert.ErrorIs(t, err, ErrMalformedMessage)
}
