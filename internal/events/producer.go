package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer публикует события жизненного цикла бронирований в Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer создает producer для указанного топика
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// Publish публикует событие; ключ партиционирования - ID бронирования,
// чтобы события одного бронирования читались в порядке публикации
func (p *Producer) Publish(ctx context.Context, event ReservationEvent) error {
	// Kafka может быть выключена конфигурацией - тогда публикация no-op
	if p == nil || p.writer == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ReservationID, 10)),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("events: write message: %w", err)
	}

	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
