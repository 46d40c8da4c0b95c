package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/m04kA/Turf-ReservationService/internal/config"
	"github.com/m04kA/Turf-ReservationService/internal/events"
	"github.com/m04kA/Turf-ReservationService/pkg/logger"
)

// Worker читает события жизненного цикла бронирований из Kafka и логирует их.
// Точка расширения для уведомлений: email владельцу площадки, push пользователю
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if !cfg.Kafka.Enabled {
		log.Fatal("Kafka is disabled in config, worker has nothing to consume")
	}

	log.Info("Starting reservation events worker (brokers=%v, topic=%s, group=%s)",
		cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)

	consumer := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Завершаемся по сигналу
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("Shutting down worker...")
		cancel()
	}()

	err = consumer.Consume(ctx, func(ctx context.Context, event events.ReservationEvent) error {
		log.Info("Event received: type=%s, reservation_id=%d, user_id=%d, turf_id=%d, date=%s, interval=%s-%s, status=%s",
			event.Type, event.ReservationID, event.UserID, event.TurfID,
			event.Date, event.StartTime, event.EndTime, event.Status)
		return nil
	})

	if err != nil && ctx.Err() == nil {
		log.Fatal("Consumer stopped with error: %v", err)
	}

	log.Info("Worker stopped gracefully")
}
