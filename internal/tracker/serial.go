// Package tracker provides curl-angle sources for the game.
package tracker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

// SerialSource reads newline-delimited JSON pose samples from a USB IMU.
type SerialSource struct {
	portName string
	baud     uint
	axis     string
	logger   *slog.Logger
	samples  chan Sample
	port     io.ReadWriteCloser
	once     sync.Once
}

// NewSerialSource builds a serial-port source.
func NewSerialSource(cfg model.TrackerConfig, logger *slog.Logger) *SerialSource {
	return &SerialSource{
		portName: cfg.SerialPort,
		baud:     cfg.SerialBaud,
		axis:     cfg.Axis,
		logger:   logger,
		samples:  make(chan Sample, 64),
	}
}

// Start opens the port and launches the line reader.
func (s *SerialSource) Start(ctx context.Context) error {
	opts := serial.OpenOptions{
		PortName:        s.portName,
		BaudRate:        s.baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	}
	port, err := serial.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.portName, err)
	}
	s.port = port
	s.logger.Info("serial tracker opened",
		slog.String("port", s.portName), slog.Uint64("baud", uint64(s.baud)))
	go s.run(ctx)
	return nil
}

func (s *SerialSource) run(ctx context.Context) {
	reader := bufio.NewReader(s.port)
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			s.logger.Warn("serial read ended", slog.Any("error", err))
			return
		}
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var p Pose
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			s.logger.Warn("bad serial pose line", slog.Any("error", err))
			continue
		}
		pushSample(s.samples, Sample{
			AngleDegrees: p.Axis(s.axis),
			Active:       true,
			At:           time.Now(),
		})
	}
}

// Samples returns the sample stream.
func (s *SerialSource) Samples() <-chan Sample {
	return s.samples
}

// Close closes the port, which also ends the reader.
func (s *SerialSource) Close() error {
	var err error
	s.once.Do(func() {
		if s.port != nil {
			err = s.port.Close()
		}
	})
	return err
}
