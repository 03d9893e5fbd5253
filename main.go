// main.go
package main

import (
	"context"
	"log"
	"time"

	"fatec-reserve/cmd"
	"fatec-reserve/internal/data/repository"
	"fatec-reserve/internal/event"
	"fatec-reserve/internal/wire"
	"fatec-reserve/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Event publisher
	var publisher event.Publisher = event.NewNopPublisher(logger)
	if len(config.Kafka.Brokers) > 0 {
		publisher = event.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Topic, 100, logger)
		logger.Info("Publishing reservation events",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.Topic),
		)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}()

	// In-memory repositories; the reservation ledger lives here
	repos := repository.NewRepository(logger)

	app := wire.Wiring(repos, publisher, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Service.Auth.SeedAdmin(ctx); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	go cleanSessions(ctx, repos.Session, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

func cleanSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sessions.CleanExpiredSessions(ctx); err != nil {
				logger.Warn("Failed to clean sessions", zap.Error(err))
			}
		}
	}
}
