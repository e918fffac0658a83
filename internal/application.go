package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hives/noughts-and-crosses/internal/config"
	"github.com/Hives/noughts-and-crosses/internal/repository"
	"github.com/Hives/noughts-and-crosses/internal/repository/storage"
	"github.com/Hives/noughts-and-crosses/internal/usecase"
	"github.com/Hives/noughts-and-crosses/transport/rest"
	"github.com/Hives/noughts-and-crosses/transport/websocket"
)

const sweepInterval = time.Minute

// RunApp - runs the application until a signal arrives or a server fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameRepo, closeRepo, err := newGameRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameManager := usecase.NewGameManager(logger, gameRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.New(logger, gameManager, conf.RateLimit).Start(ctx, conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- websocket.New(logger, gameManager).Start(ctx, conf.SocketPort)
	}()

	var runErr error
	select {
	case err = <-httpErrCh:
		httpErrCh = nil
		if err != nil {
			runErr = fmt.Errorf("HTTP server error: %w", err)
		}
	case err = <-wsErrCh:
		wsErrCh = nil
		if err != nil {
			runErr = fmt.Errorf("WebSocket server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	// stop the other server and wait for both before closing storage
	stop()
	for _, ch := range []chan error{httpErrCh, wsErrCh} {
		if ch == nil {
			continue
		}
		if err = <-ch; err != nil {
			log.Error("server stopped with error", "error", err)
		}
	}

	return runErr
}

func newGameRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	log := logger.With("component", "app")

	switch conf.Storage {
	case config.StorageRedis:
		client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		log.Info("Using redis storage", "addr", conf.Redis.GetRedisAddr())

		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}

		return repository.NewGameRepository(client, conf.GameTTL), closeFn, nil
	default:
		memory := repository.NewMemoryGameRepository(conf.GameTTL)
		if conf.GameTTL > 0 {
			go memory.RunSweeper(ctx, logger, sweepInterval)
		}

		log.Info("Using in-memory storage")

		return memory, func() {}, nil
	}
}
