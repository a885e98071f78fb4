package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireworld/internal/circuit"
	"wireworld/internal/engine"
	"wireworld/internal/turbo"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) engine.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg engine.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func readRender(t *testing.T, conn *websocket.Conn) engine.Render {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	r, err := engine.DecodeRender(data)
	require.NoError(t, err)
	return r
}

func send(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

func TestSessionCommandsAndEvents(t *testing.T) {
	srv := httptest.NewServer(NewServer())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	send(t, conn, `{"type":"initialize","args":[{"width":3,"height":1,"cellStates":[[1,0,2]]}]}`)
	r := readRender(t, conn)
	assert.Equal(t, uint64(0), r.Generation)
	assert.Equal(t, []int{1}, r.HeadPositions)
	assert.Equal(t, []int{0}, r.TailPositions)
	assert.Equal(t, 3, r.Width)

	send(t, conn, `{"type":"bogus"}`)
	send(t, conn, `{"type":"advance"}`)
	r = readRender(t, conn)
	assert.Equal(t, uint64(1), r.Generation)
	assert.Equal(t, []int{2}, r.HeadPositions)
	assert.Equal(t, []int{1}, r.TailPositions)

	send(t, conn, `{"type":"reset","args":[{"generation":10,"headPositions":[1],"tailPositions":[]}]}`)
	r = readRender(t, conn)
	assert.Equal(t, uint64(10), r.Generation)
	assert.Equal(t, []int{1}, r.HeadPositions)
}

func TestMalformedCommandReportsError(t *testing.T) {
	srv := httptest.NewServer(NewServer())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	send(t, conn, `{"type":"initialize","args":[{"width":-1,"height":1}]}`)
	msg := readMessage(t, conn)
	assert.Equal(t, engine.EventError, msg.Type)

	send(t, conn, `not json`)
	msg = readMessage(t, conn)
	assert.Equal(t, engine.EventError, msg.Type)
}

func TestBadInitializeDropsRunningModel(t *testing.T) {
	srv := httptest.NewServer(NewServer())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	send(t, conn, `{"type":"initialize","args":[{"width":3,"height":1,"cellStates":[[1,0,2]]}]}`)
	readRender(t, conn)
	send(t, conn, `{"type":"startTurbo"}`)
	send(t, conn, `{"type":"initialize","args":[{"width":-1,"height":1}]}`)
	for {
		msg := readMessage(t, conn)
		if msg.Type == engine.EventError {
			break
		}
		require.Equal(t, engine.EventRender, msg.Type)
	}

	// Neither the old model nor its turbo loop may answer any more.
	send(t, conn, `{"type":"advance"}`)
	send(t, conn, `{"type":"initialize","args":[{"width":2,"height":1,"cellStates":[[0,2]]}]}`)
	r := readRender(t, conn)
	assert.Equal(t, 2, r.Width)
	assert.Equal(t, uint64(0), r.Generation)
	assert.False(t, r.Turbo())
	assert.Equal(t, []int{0}, r.HeadPositions)
}

func TestStalledClientReleasesServer(t *testing.T) {
	srv := httptest.NewServer(NewServer(
		WithWriteTimeout(100*time.Millisecond),
		WithEngineOptions(engine.WithTurboOptions(
			turbo.WithBudget(time.Millisecond),
			turbo.WithRenderInterval(0),
		)),
	))
	defer srv.Close()

	grid, err := circuit.Random(200, 200, 1, 0.6)
	require.NoError(t, err)
	data, err := engine.EncodeCommand(engine.Initialize(grid, nil))
	require.NoError(t, err)

	stalled := dial(t, srv)
	defer stalled.Close()
	require.NoError(t, stalled.WriteMessage(websocket.TextMessage, data))
	send(t, stalled, `{"type":"startTurbo"}`)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	require.Eventually(t, func() bool {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 30*time.Second, 50*time.Millisecond)
}

func TestSecondSessionRefusedUntilFirstCloses(t *testing.T) {
	srv := httptest.NewServer(NewServer())
	defer srv.Close()

	first := dial(t, srv)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	require.NoError(t, first.Close())
	require.Eventually(t, func() bool {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)
}
