package simulator

import (
	"fmt"
	"os"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	producers "github.com/cguerreroieu2023-ops/Stream-analytics/internal/simulator/producers"
)

// OutputDestination receives emitted events, one serialized record at a
// time, keyed by feed name.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// ConsoleOutput writes one record per line to stdout, the default streaming
// destination.
type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := os.Stdout.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// KafkaOutput publishes each record to the topic matching its feed name.
type KafkaOutput struct {
	producer *producers.SaramaProducer
}

func NewKafkaOutput(config *models.Config) (*KafkaOutput, error) {
	producer, err := producers.NewSaramaProducer(config)
	if err != nil {
		return nil, err
	}
	return &KafkaOutput{producer: producer}, nil
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	return k.producer.WriteMessage(topic, msg)
}

func (k *KafkaOutput) Close() error {
	return k.producer.Close()
}
