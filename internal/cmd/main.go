package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	log := setupLogger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("worker exited")
	}
}

func setupLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func run(log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		return err
	}

	database, err := setupDatabase(log)
	if err != nil {
		return err
	}
	defer database.Close()

	services, err := setupServices(database, config, log)
	if err != nil {
		return err
	}
	defer services.Close()

	if err := services.Store.Migrate(ctx); err != nil {
		return err
	}

	services.Gateway.Start(ctx)
	server := setupServer(services, config)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("worker listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// The open league flushes before the listener stops taking requests.
		if err := services.Gateway.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("closing open league")
		}
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
