// Package tracker provides curl-angle sources for the game.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sender is a phone browser on the local network.
	},
}

// WSSource runs a small HTTP server and accepts orientation samples pushed
// over a websocket, typically from a phone browser held against the foot.
type WSSource struct {
	addr    string
	path    string
	axis    string
	logger  *slog.Logger
	samples chan Sample
	server  *http.Server
	group   *errgroup.Group
	done    chan struct{}
	once    sync.Once
}

// NewWSSource builds a websocket receiver source.
func NewWSSource(cfg model.TrackerConfig, logger *slog.Logger) *WSSource {
	return &WSSource{
		addr:    cfg.WSAddr,
		path:    cfg.WSPath,
		axis:    cfg.Axis,
		logger:  logger,
		samples: make(chan Sample, 64),
		done:    make(chan struct{}),
	}
}

// Start launches the HTTP server and the shutdown watcher.
func (s *WSSource) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.path, s.handlePose)
	s.server = &http.Server{Addr: s.addr, Handler: mux}

	group, gctx := errgroup.WithContext(ctx)
	s.group = group
	group.Go(func() error {
		s.logger.Info("websocket tracker listening",
			slog.String("addr", s.addr), slog.String("path", s.path))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to serve websocket tracker: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.done:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return nil
}

// handlePose upgrades one sender connection and pumps its pose messages
// into the sample stream until the sender disconnects.
func (s *WSSource) handlePose(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			// Best-effort close on a finished connection.
			_ = cerr
		}
	}()
	s.logger.Info("pose sender connected", slog.String("remote", r.RemoteAddr))

	for {
		var p Pose
		if err := conn.ReadJSON(&p); err != nil {
			s.logger.Info("pose sender disconnected", slog.Any("error", err))
			return
		}
		pushSample(s.samples, Sample{
			AngleDegrees: p.Axis(s.axis),
			Active:       true,
			At:           time.Now(),
		})
	}
}

// Samples returns the sample stream.
func (s *WSSource) Samples() <-chan Sample {
	return s.samples
}

// Close shuts the server down and waits for the workers.
func (s *WSSource) Close() error {
	if s.server == nil {
		return nil
	}
	s.once.Do(func() {
		close(s.done)
	})
	if err := s.group.Wait(); err != nil {
		return fmt.Errorf("failed to stop websocket tracker: %w", err)
	}
	return nil
}
