// Package tracker provides curl-angle sources for the game.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

// MQTTSource subscribes to a pose topic and reduces each JSON payload to
// the configured axis.
type MQTTSource struct {
	broker   string
	topic    string
	clientID string
	axis     string
	logger   *slog.Logger
	client   mqtt.Client
	samples  chan Sample
}

// NewMQTTSource builds an MQTT subscriber source.
func NewMQTTSource(cfg model.TrackerConfig, logger *slog.Logger) *MQTTSource {
	return &MQTTSource{
		broker:   cfg.MQTTBroker,
		topic:    cfg.MQTTTopic,
		clientID: cfg.MQTTClientID,
		axis:     cfg.Axis,
		logger:   logger,
		samples:  make(chan Sample, 64),
	}
}

// Start connects to the broker and subscribes to the pose topic.
func (s *MQTTSource) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.broker).
		SetClientID(s.clientID)

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	s.logger.Info("connected to MQTT broker", slog.String("broker", s.broker))

	token := s.client.Subscribe(s.topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			s.logger.Warn("bad pose payload", slog.Any("error", err))
			return
		}
		pushSample(s.samples, Sample{
			AngleDegrees: p.Axis(s.axis),
			Active:       true,
			At:           time.Now(),
		})
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.topic, token.Error())
	}
	s.logger.Info("subscribed to pose topic", slog.String("topic", s.topic))
	return nil
}

// Samples returns the sample stream.
func (s *MQTTSource) Samples() <-chan Sample {
	return s.samples
}

// Close disconnects from the broker.
func (s *MQTTSource) Close() error {
	if s.client != nil {
		s.client.Disconnect(250)
	}
	return nil
}
