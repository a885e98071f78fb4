package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wireworld/internal/app"
	"wireworld/internal/transport"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "listen address")
	path := flag.String("path", "/engine", "websocket endpoint path")
	anyOrigin := flag.Bool("any-origin", false, "accept websocket connections from any origin")
	dev := flag.Bool("dev", false, "human-readable debug logging")
	flag.Parse()

	logger, err := app.NewLogger(*dev)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	opts := []transport.Option{transport.WithLogger(logger.Named("transport"))}
	if *anyOrigin {
		opts = append(opts, transport.WithCheckOrigin(func(*http.Request) bool { return true }))
	}
	mux := http.NewServeMux()
	mux.Handle(*path, transport.NewServer(opts...))

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", *addr), zap.Error(err))
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	logger.Info("listening", zap.String("url", "ws://"+ln.Addr().String()+*path))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}
