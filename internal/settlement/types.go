package settlement

import (
	"context"
	"math/big"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RaceRepository persists race aggregates. Every mutating method is a
	// conditional update keyed on race id and current state; the boolean result
	// reports whether this call applied the change.
	RaceRepository interface {
		FindByRaceID(ctx context.Context, raceID uint64) (*model.Race, error)
		UpsertRace(ctx context.Context, race *model.Race) (bool, error)
		UpdateStatusIf(ctx context.Context, raceID uint64, from []model.RaceStatus, to model.RaceStatus) (bool, error)
		EnterRace(ctx context.Context, raceID uint64, entry model.Participant, fee *big.Int) (*model.Race, error)
		StartRace(ctx context.Context, raceID uint64, startedAt time.Time) (bool, error)
		SaveSimulation(ctx context.Context, raceID uint64, sim *model.SimulationResult, settleAfter *time.Time) (bool, error)
		ClaimSettlement(ctx context.Context, raceID uint64, now time.Time, lease time.Duration) (bool, error)
		RecordSettlementTx(ctx context.Context, raceID uint64, txHash string) error
		RecordFinishError(ctx context.Context, raceID uint64, finishErr model.FinishError) error
		CompleteRace(ctx context.Context, raceID uint64, outcome model.RaceOutcome) (bool, error)
		CancelRace(ctx context.Context, raceID uint64, cancelledAt time.Time) (bool, error)
		PendingSettlements(ctx context.Context, now time.Time, maxAttempts, limit int) ([]uint64, error)
		AwaitingConfirmation(ctx context.Context, limit int) ([]uint64, error)
	}

	// RatStatsSource reads the current stats of a rat NFT.
	RatStatsSource interface {
		RatStats(ctx context.Context, tokenID uint64) (model.RatStats, error)
	}

	// RaceContract is the on-chain race contract as seen by the oracle signer.
	RaceContract interface {
		Sender() string
		Oracle(ctx context.Context) (string, error)
		FinishRace(ctx context.Context, raceID uint64, positions []uint64) (string, error)
		WaitMined(ctx context.Context, txHash string) (bool, error)
		BlockHashOf(ctx context.Context, txHash string) (string, error)
	}

	// Archive stores finalized race results for analytics.
	Archive interface {
		ArchiveRace(ctx context.Context, race *model.Race, outcome model.RaceOutcome) error
	}

	// Publisher announces lifecycle changes.
	Publisher interface {
		Publish(ctx context.Context, n model.Notification) error
	}

	// Metrics records driver operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// SweeperMetrics records sweep iterations.
	SweeperMetrics interface {
		ObserveSweep(kind string, races int, err error, started time.Time)
	}
)
