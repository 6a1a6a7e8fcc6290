// Package transport exposes the oracle's HTTP and gRPC surfaces.
package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/goodnatureofminers/ratrace-oracle/internal/webhook"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// EventHandler applies a decoded lifecycle event.
	EventHandler interface {
		Handle(ctx context.Context, event model.Event) error
	}

	// SignatureChecker authenticates a delivery.
	SignatureChecker interface {
		Check(body []byte, header string, headers webhook.HeaderGetter) error
	}

	// ReplayGuard suppresses duplicate deliveries.
	ReplayGuard interface {
		Acquire(ctx context.Context, signature string) (bool, error)
		Release(ctx context.Context, signature string) error
	}

	// RaceReader loads races for the read API.
	RaceReader interface {
		FindByRaceID(ctx context.Context, raceID uint64) (*model.Race, error)
	}

	// DeliveryMetrics records webhook outcomes.
	DeliveryMetrics interface {
		ObserveDelivery(event, outcome string, started time.Time)
	}

	// HealthChecker probes a dependency.
	HealthChecker interface {
		Ping(ctx context.Context) error
	}
)

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Ping calls f.
func (f HealthCheckFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
