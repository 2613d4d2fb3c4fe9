package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "travel_journal/docs"
	"travel_journal/internal/handlers"
	"travel_journal/internal/logger"
	"travel_journal/internal/observability"
	"travel_journal/internal/repository"
	"travel_journal/internal/server"
	"travel_journal/internal/service"

	"github.com/spf13/viper"
)

const (
	envPrefix        = "TRAVEL"
	metricsNamespace = "travel_journal"
	shutdownTimeout  = 10 * time.Second
)

// @title        Travel Journal
// @version      1.0
// @description  Front server for the travel article site: app shell, per-tab live channel, health and metrics.
// @BasePath     /
func main() {
	// load config.yml; defaults and env cover a missing file
	cfgErr := loadConfig()

	// init logger
	log := logger.Get(viper.GetString("log.level"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// wire dependencies
	metrics := observability.NewCollector(metricsNamespace)
	client := repository.NewClient(viper.GetString("backend.base_url"), http.DefaultClient, metrics)
	services := service.NewService(client, service.Config{
		PageSize: viper.GetInt("list.page_size"),
		Debounce: viper.GetDuration("list.debounce"),
	}, log.Named("tabs"), metrics)
	apiHandler := handlers.NewHandler(services, handlers.Config{
		MaxMessageBytes: viper.GetInt64("ws.max_message_bytes"),
	}, log.Named("http"), metrics)

	log.Infow("starting",
		"port", viper.GetString("port"),
		"backend", viper.GetString("backend.base_url"),
	)

	// start HTTP server
	srv := server.New(viper.GetString("port"), apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", server.DefaultPort)
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("backend.base_url", "http://localhost:1337/api")
	viper.SetDefault("list.page_size", service.DefaultPageSize)
	viper.SetDefault("list.debounce", service.DefaultDebounce)
	viper.SetDefault("ws.max_message_bytes", 8<<20)

	// TRAVEL_BACKEND_BASE_URL overrides backend.base_url
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
// Open tabs end when their connections close.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
