// Package transport carries engine commands and events over a websocket.
// Each text frame holds one {type, args} message.
package transport

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wireworld/internal/engine"
)

const defaultWriteTimeout = 5 * time.Second

// Server is an http.Handler that upgrades to a websocket and attaches the
// connection to a fresh engine. One session runs at a time; further
// connections are refused until it ends.
type Server struct {
	log          *zap.Logger
	upgrader     websocket.Upgrader
	engineOpts   []engine.Option
	writeTimeout time.Duration

	mu   sync.Mutex
	busy bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithEngineOptions passes options to every session's engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Server) { s.engineOpts = append(s.engineOpts, opts...) }
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(f func(r *http.Request) bool) Option {
	return func(s *Server) { s.upgrader.CheckOrigin = f }
}

// WithWriteTimeout bounds each outbound frame write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// NewServer returns a websocket server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		log:          zap.NewNop(),
		writeTimeout: defaultWriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Server) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// ServeHTTP runs one session until the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.acquire() {
		http.Error(w, "a simulation session is already active", http.StatusConflict)
		return
	}
	defer s.release()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("session", uuid.NewString()))
	log.Info("session opened", zap.String("remote", r.RemoteAddr))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Closing the connection unblocks the read loop when the session ends
	// from the write side.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	sink := &connSink{conn: conn, log: log, cancel: cancel, timeout: s.writeTimeout}
	eng := engine.New(sink, append(append([]engine.Option(nil), s.engineOpts...), engine.WithLogger(log.Named("engine")))...)
	done := make(chan struct{})
	go func() {
		defer close(done)
		eng.Run(ctx)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read failed", zap.Error(err))
			}
			break
		}
		cmd, err := engine.DecodeCommand(data)
		if err != nil {
			log.Warn("dropping undecodable command", zap.Error(err))
			sink.Error(err)
			continue
		}
		if err := eng.Send(ctx, cmd); err != nil {
			break
		}
	}

	cancel()
	<-done
	log.Info("session closed")
}

// connSink writes events to the websocket. Writes are serialized because
// both the engine and the read loop report through it.
type connSink struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	log     *zap.Logger
	cancel  context.CancelFunc
	timeout time.Duration
}

func (c *connSink) Render(r engine.Render) {
	data, err := engine.EncodeRender(r)
	if err != nil {
		c.log.Error("encode render", zap.Error(err))
		return
	}
	c.write(data)
}

func (c *connSink) Error(err error) {
	data, encErr := engine.EncodeError(err)
	if encErr != nil {
		c.log.Error("encode error event", zap.Error(encErr))
		return
	}
	c.write(data)
}

func (c *connSink) write(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.log.Warn("write failed, ending session", zap.Error(err))
		c.cancel()
	}
}
