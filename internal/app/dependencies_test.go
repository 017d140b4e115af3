package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
)

func TestNewDependencies_Memory(t *testing.T) {
	logger := log.New().WithField("component", "test")

	deps, err := NewDependencies(context.Background(), DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("new dependencies failed: %v", err)
	}

	if deps.Customers == nil || deps.Products == nil || deps.Orders == nil {
		t.Fatal("expected all repositories to be initialized")
	}

	// Memory driver не требует внешних проверок и ресурсов.
	handler := healthcheck.NewHandler("test")
	deps.RegisterHealthChecks(handler)

	if err := deps.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
