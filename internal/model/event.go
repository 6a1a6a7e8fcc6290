package model

import "math/big"

// EventName is the on-chain event a webhook delivery carries.
type EventName string

var (
	EventRaceCreated   EventName = "RaceCreated"
	EventRacerEntered  EventName = "RacerEntered"
	EventRaceStarted   EventName = "RaceStarted"
	EventRaceFinished  EventName = "RaceFinished"
	EventRaceCancelled EventName = "RaceCancelled"
)

// Payload is implemented by every typed event body.
type Payload interface {
	EventName() EventName
}

// Event is the canonical internal form of a lifecycle event, independent of
// the webhook payload shape it arrived in.
type Event struct {
	Name        EventName
	RaceID      uint64
	TxHash      string
	BlockNumber uint64
	BlockHash   string
	Payload     Payload
}

// RaceCreated mirrors a new race.
type RaceCreated struct {
	TrackID    uint64
	EntryToken string
	EntryFee   *big.Int
	Creator    string
}

// RacerEntered records one entry.
type RacerEntered struct {
	Racer      string
	RatTokenID uint64
}

// RaceStartedPayload signals that the race can be simulated and settled.
type RaceStartedPayload struct{}

// RaceFinishedPayload confirms settlement; Positions is optional.
type RaceFinishedPayload struct {
	Positions []uint64
}

// RaceCancelledPayload signals a refunded race.
type RaceCancelledPayload struct{}

func (RaceCreated) EventName() EventName { return EventRaceCreated }
func (RacerEntered) EventName() EventName { return EventRacerEntered }
func (RaceStartedPayload) EventName() EventName { return EventRaceStarted }
func (RaceFinishedPayload) EventName() EventName { return EventRaceFinished }
func (RaceCancelledPayload) EventName() EventName { return EventRaceCancelled }
