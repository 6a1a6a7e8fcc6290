package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestRPCClientRecords(t *testing.T) {
	m := NewRPCClient("")
	start := time.Now().Add(-200 * time.Millisecond)

	if inc := delta(t, rpcRequestsTotal.WithLabelValues("eth_call", "unknown", "success"), func() {
		m.Observe("eth_call", nil, start)
	}); inc != 1 {
		t.Fatalf("expected rpc call counter increment, got %v", inc)
	}

	if inc := delta(t, rpcRequestsTotal.WithLabelValues("eth_call", "31337", "error"), func() {
		NewRPCClient("31337").Observe("eth_call", errors.New("oops"), start)
	}); inc != 1 {
		t.Fatalf("expected rpc error counter increment, got %v", inc)
	}
}

func TestPostgresRepositoryRecords(t *testing.T) {
	m := NewPostgresRepository()
	start := time.Now()

	tests := []struct {
		name   string
		err    error
		status string
	}{
		{name: "success", status: "success"},
		{name: "not found", err: storage.ErrNotFound, status: "rejected"},
		{name: "rat busy wrapped", err: fmt.Errorf("enter: %w", storage.ErrRatBusy), status: "rejected"},
		{name: "driver error", err: errors.New("conn reset"), status: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if inc := delta(t, postgresRepositoryRequestsTotal.WithLabelValues("enter_race", tt.status), func() {
				m.Observe("enter_race", tt.err, start)
			}); inc != 1 {
				t.Fatalf("expected %s increment, got %v", tt.status, inc)
			}
		})
	}
}

func TestClickhouseRepositoryRecords(t *testing.T) {
	m := NewClickhouseRepository()

	if inc := delta(t, clickhouseRepositoryRequestsTotal.WithLabelValues("insert_race_results", "error"), func() {
		m.Observe("insert_race_results", errors.New("boom"), time.Now())
	}); inc != 1 {
		t.Fatalf("expected clickhouse error increment, got %v", inc)
	}
}

func TestSettlementRecords(t *testing.T) {
	m := NewSettlement()

	if inc := delta(t, settlementOperationsTotal.WithLabelValues("settle", "success"), func() {
		m.Observe("settle", nil, time.Now())
	}); inc != 1 {
		t.Fatalf("expected settle increment, got %v", inc)
	}
}

func TestSweeperRecords(t *testing.T) {
	m := NewSweeper()

	if inc := delta(t, sweeperIterationsTotal.WithLabelValues("confirm", "success"), func() {
		m.ObserveSweep("confirm", 3, nil, time.Now())
	}); inc != 1 {
		t.Fatalf("expected sweep increment, got %v", inc)
	}
	m.ObserveSweep("settle", 0, errors.New("db down"), time.Now())

	if got := testutil.CollectAndCount(sweeperRaces); got < 1 {
		t.Fatalf("expected races histogram series, got %d", got)
	}
}

func TestWebhookRecords(t *testing.T) {
	m := NewWebhook()

	if inc := delta(t, webhookDeliveriesTotal.WithLabelValues("unknown", "unauthorized"), func() {
		m.ObserveDelivery("", "unauthorized", time.Now())
	}); inc != 1 {
		t.Fatalf("expected webhook increment, got %v", inc)
	}
}
