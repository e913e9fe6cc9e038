package main

import (
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRun_ReturnsWhenPortIsTaken(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen error: %v", err)
	}
	defer func() { _ = listener.Close() }()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	done := make(chan error, 1)
	go func() {
		done <- run(e, listener.Addr().String(), make(chan os.Signal))
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected bind error, got nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run kept waiting for a signal although the server never started")
	}
}

func TestRun_ShutsDownOnSignal(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	quit := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(e, "127.0.0.1:0", quit)
	}()
	quit <- syscall.SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after shutdown signal")
	}
}
