package transport

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/goodnatureofminers/ratrace-oracle/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RaceHandler serves GET /races/{id}.
type RaceHandler struct {
	races    RaceReader
	decimals int32
	logger   *zap.Logger
}

// NewRaceHandler builds a RaceHandler rendering amounts with tokenDecimals.
func NewRaceHandler(races RaceReader, tokenDecimals int32, logger *zap.Logger) *RaceHandler {
	return &RaceHandler{races: races, decimals: tokenDecimals, logger: logger.Named("race_api")}
}

type participantView struct {
	Racer          string         `json:"racer"`
	TokenID        uint64         `json:"tokenId"`
	FinishPosition *int           `json:"finishPosition,omitempty"`
	Stats          model.RatStats `json:"stats"`
	EnteredAt      time.Time      `json:"enteredAt"`
}

type finishErrorView struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type raceView struct {
	RaceID       uint64                  `json:"raceId"`
	TrackID      uint64                  `json:"trackId"`
	EntryToken   string                  `json:"entryToken"`
	EntryFee     string                  `json:"entryFee"`
	Creator      string                  `json:"creator"`
	Status       model.RaceStatus        `json:"status"`
	PrizePool    string                  `json:"prizePool"`
	Participants []participantView       `json:"participants"`
	Simulation   *model.SimulationResult `json:"simulation,omitempty"`
	SettlementTx string                  `json:"settlementTx,omitempty"`
	FinishError  *finishErrorView        `json:"finishError,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
	StartedAt    *time.Time              `json:"startedAt,omitempty"`
	CompletedAt  *time.Time              `json:"completedAt,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RaceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raceID, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "race id must be an unsigned integer"})
		return
	}

	race, err := h.races.FindByRaceID(r.Context(), raceID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.Error("load race",
			zap.String("request_id", RequestID(r.Context())),
			zap.Uint64("race_id", raceID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, h.view(race))
}

func (h *RaceHandler) view(race *model.Race) raceView {
	v := raceView{
		RaceID:       race.RaceID,
		TrackID:      race.TrackID,
		EntryToken:   race.EntryToken,
		EntryFee:     h.amount(race.EntryFee),
		Creator:      race.Creator,
		Status:       race.Status,
		PrizePool:    h.amount(race.PrizePool),
		Participants: make([]participantView, 0, len(race.Participants)),
		Simulation:   race.Simulation,
		SettlementTx: race.SettlementTx,
		CreatedAt:    race.CreatedAt,
		StartedAt:    race.StartedAt,
		CompletedAt:  race.CompletedAt,
	}
	for _, p := range race.Participants {
		v.Participants = append(v.Participants, participantView{
			Racer:          p.RacerAddress,
			TokenID:        p.RatTokenID,
			FinishPosition: p.FinishPosition,
			Stats:          p.Stats,
			EnteredAt:      p.EnteredAt,
		})
	}
	if race.FinishError != nil {
		v.FinishError = &finishErrorView{Message: race.FinishError.Message, At: race.FinishError.At}
	}
	return v
}

// amount renders base units as a token-unit decimal string.
func (h *RaceHandler) amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -h.decimals).String()
}
