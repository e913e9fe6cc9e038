package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jo-hoe/snapcam/internal/backend"
	"github.com/jo-hoe/snapcam/internal/core"
	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 10 * time.Second

// getConfigPath returns the config file location and whether it was set explicitly
func getConfigPath() (string, bool) {
	// First check if config path is provided via environment variable
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath, true
	}

	// Default to config.yaml in current working directory
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "config.yaml"), false
}

func loadConfig() (*core.ServiceConfig, error) {
	configPath, explicit := getConfigPath()
	if _, err := os.Stat(configPath); !explicit && errors.Is(err, os.ErrNotExist) {
		log.Printf("no config file at %s, using defaults", configPath)
		return core.DefaultConfig(), nil
	}

	config, err := core.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	return config, nil
}

func main() {
	// Load configuration
	config, err := loadConfig()
	if err != nil {
		log.Printf("%v", err)
		panic(err)
	}

	coreService, err := core.NewCoreService(config)
	if err != nil {
		log.Printf("failed to initialize core service: %v", err)
		panic(err)
	}

	server := backend.NewServer(config)
	apiService := backend.NewAPIService(config, coreService)
	apiService.SetRoutes(server)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	runErr := run(server, fmt.Sprintf(":%d", config.Port), quit)
	if runErr != nil {
		log.Printf("http server error: %v", runErr)
	}

	if err := coreService.Close(); err != nil {
		log.Printf("core service close error: %v", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}

// run serves until a signal arrives on quit or the server fails to start.
// A startup failure such as an occupied port is returned instead of waiting for a signal.
func run(server *echo.Echo, address string, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)

	// Start HTTP server in a goroutine to allow graceful shutdown
	go func() {
		log.Printf("starting server on %s", address)
		if err := server.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		log.Printf("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
