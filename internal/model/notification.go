package model

import "time"

// NotificationKind names a lifecycle notification published downstream.
type NotificationKind string

const (
	NotifyResultsComputed NotificationKind = "ResultsComputed"
	NotifyRaceSettled     NotificationKind = "RaceSettled"
	NotifyRaceFinalized   NotificationKind = "RaceFinalized"
	NotifyRaceCancelled   NotificationKind = "RaceCancelled"
	NotifySettlementError NotificationKind = "SettlementFailed"
)

// Notification is a race lifecycle change announced to other services.
type Notification struct {
	Kind         NotificationKind `json:"kind"`
	RaceID       uint64           `json:"raceId"`
	Status       RaceStatus       `json:"status"`
	Positions    []uint64         `json:"positions,omitempty"`
	SettlementTx string           `json:"settlementTx,omitempty"`
	Message      string           `json:"message,omitempty"`
	At           time.Time        `json:"at"`
}
