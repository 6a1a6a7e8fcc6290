package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

var (
	// ErrUnknownEvent marks a delivery for an event this service does not handle.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrMalformedEvent marks a handled event whose body cannot be used.
	ErrMalformedEvent = errors.New("malformed event")
)

// canonical shape: {event_name, transaction_hash, block_number, block_hash, parameters}
type canonicalEnvelope struct {
	EventName       string          `json:"event_name"`
	TransactionHash string          `json:"transaction_hash"`
	BlockNumber     *number         `json:"block_number"`
	BlockHash       string          `json:"block_hash"`
	Parameters      json.RawMessage `json:"parameters"`
}

// legacy shape: {event:{name,args}, transaction:{hash,blockNumber,blockHash}}
type legacyEnvelope struct {
	Event *struct {
		Name string          `json:"name"`
		Args json.RawMessage `json:"args"`
	} `json:"event"`
	Transaction struct {
		Hash        string  `json:"hash"`
		BlockNumber *number `json:"blockNumber"`
		BlockHash   string  `json:"blockHash"`
	} `json:"transaction"`
}

type parameters struct {
	RaceID     *number  `json:"raceId"`
	TrackID    *number  `json:"trackId"`
	EntryToken string   `json:"entryToken"`
	EntryFee   *number  `json:"entryFee"`
	Creator    string   `json:"creator"`
	Racer      string   `json:"racer"`
	RatTokenID *number  `json:"ratTokenId"`
	Positions  []number `json:"positions"`
}

// DecodeEnvelope translates a verified delivery body into a model.Event. Both
// the canonical and the legacy payload shapes are accepted.
func DecodeEnvelope(body []byte) (model.Event, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return model.Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	var (
		name        string
		ev          model.Event
		rawParams   json.RawMessage
		blockNumber *number
	)
	switch {
	case probe["event_name"] != nil:
		var env canonicalEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return model.Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		name, rawParams, blockNumber = env.EventName, env.Parameters, env.BlockNumber
		ev.TxHash, ev.BlockHash = env.TransactionHash, env.BlockHash
	case probe["event"] != nil:
		var env legacyEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return model.Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		if env.Event == nil {
			return model.Event{}, fmt.Errorf("%w: null event", ErrUnknownEvent)
		}
		name, rawParams, blockNumber = env.Event.Name, env.Event.Args, env.Transaction.BlockNumber
		ev.TxHash, ev.BlockHash = env.Transaction.Hash, env.Transaction.BlockHash
	default:
		return model.Event{}, fmt.Errorf("%w: no event name", ErrUnknownEvent)
	}

	ev.Name = model.EventName(name)
	switch ev.Name {
	case model.EventRaceCreated, model.EventRacerEntered, model.EventRaceStarted,
		model.EventRaceFinished, model.EventRaceCancelled:
	default:
		return model.Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}

	if blockNumber != nil {
		n, err := blockNumber.uint64()
		if err != nil {
			return model.Event{}, fmt.Errorf("%w: block number: %w", ErrMalformedEvent, err)
		}
		ev.BlockNumber = n
	}

	var p parameters
	if len(bytes.TrimSpace(rawParams)) == 0 {
		return model.Event{}, fmt.Errorf("%w: %s has no parameters", ErrMalformedEvent, name)
	}
	if err := json.Unmarshal(rawParams, &p); err != nil {
		return model.Event{}, fmt.Errorf("%w: %s parameters: %w", ErrMalformedEvent, name, err)
	}
	if p.RaceID == nil {
		return model.Event{}, fmt.Errorf("%w: %s missing raceId", ErrMalformedEvent, name)
	}
	raceID, err := p.RaceID.uint64()
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: raceId: %w", ErrMalformedEvent, err)
	}
	ev.RaceID = raceID

	payload, err := p.payload(ev.Name)
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %s: %w", ErrMalformedEvent, name, err)
	}
	ev.Payload = payload
	return ev, nil
}

func (p parameters) payload(name model.EventName) (model.Payload, error) {
	switch name {
	case model.EventRaceCreated:
		if p.TrackID == nil || p.EntryFee == nil || p.EntryToken == "" || p.Creator == "" {
			return nil, errors.New("trackId, entryToken, entryFee and creator are required")
		}
		track, err := p.TrackID.uint64()
		if err != nil {
			return nil, fmt.Errorf("trackId: %w", err)
		}
		if p.EntryFee.Sign() < 0 {
			return nil, errors.New("entryFee is negative")
		}
		return model.RaceCreated{
			TrackID:    track,
			EntryToken: model.NormalizeAddress(p.EntryToken),
			EntryFee:   new(big.Int).Set(p.EntryFee.Int),
			Creator:    model.NormalizeAddress(p.Creator),
		}, nil
	case model.EventRacerEntered:
		if p.Racer == "" || p.RatTokenID == nil {
			return nil, errors.New("racer and ratTokenId are required")
		}
		token, err := p.RatTokenID.uint64()
		if err != nil {
			return nil, fmt.Errorf("ratTokenId: %w", err)
		}
		return model.RacerEntered{Racer: model.NormalizeAddress(p.Racer), RatTokenID: token}, nil
	case model.EventRaceStarted:
		return model.RaceStartedPayload{}, nil
	case model.EventRaceFinished:
		positions := make([]uint64, 0, len(p.Positions))
		for i := range p.Positions {
			id, err := p.Positions[i].uint64()
			if err != nil {
				return nil, fmt.Errorf("positions[%d]: %w", i, err)
			}
			positions = append(positions, id)
		}
		if len(positions) != 0 && len(positions) != model.RaceSize {
			return nil, fmt.Errorf("positions has %d entries", len(positions))
		}
		return model.RaceFinishedPayload{Positions: positions}, nil
	case model.EventRaceCancelled:
		return model.RaceCancelledPayload{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// number accepts a uint256 encoded as a JSON number, a decimal string or a
// 0x-prefixed hex string.
type number struct {
	*big.Int
}

func (n *number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return errors.New("null number")
	}
	raw = strings.Trim(raw, `"`)

	v := new(big.Int)
	var ok bool
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		_, ok = v.SetString(raw[2:], 16)
	} else {
		_, ok = v.SetString(raw, 10)
	}
	if !ok {
		return fmt.Errorf("invalid number %q", raw)
	}
	n.Int = v
	return nil
}

func (n *number) uint64() (uint64, error) {
	if n == nil || n.Int == nil {
		return 0, errors.New("missing number")
	}
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, fmt.Errorf("%s out of uint64 range", n.String())
	}
	return n.Uint64(), nil
}
