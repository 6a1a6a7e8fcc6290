package settlement

import (
	"fmt"
	"math/big"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

// Prize shares in basis points.
const (
	creatorFeeBps = 1_000
	bpsDenom      = 10_000
)

var podiumBps = [...]int64{5_000, 3_000, 2_000}

// SplitPrizePool divides pool into a creator fee and podium prizes. The creator
// takes 10%; the rest is split 50/30/20 between the podium and any rounding
// dust goes to first place, so the parts always add up to pool.
func SplitPrizePool(pool *big.Int) model.PrizeSplit {
	total := new(big.Int)
	if pool != nil && pool.Sign() > 0 {
		total.Set(pool)
	}

	split := model.PrizeSplit{Total: new(big.Int).Set(total)}
	split.CreatorFee = bps(total, creatorFeeBps)
	remainder := new(big.Int).Sub(total, split.CreatorFee)

	distributed := new(big.Int)
	for i := range split.Prizes {
		if i >= len(podiumBps) {
			split.Prizes[i] = new(big.Int)
			continue
		}
		split.Prizes[i] = bps(remainder, podiumBps[i])
		distributed.Add(distributed, split.Prizes[i])
	}
	split.Prizes[0].Add(split.Prizes[0], new(big.Int).Sub(remainder, distributed))
	return split
}

func bps(v *big.Int, points int64) *big.Int {
	out := new(big.Int).Mul(v, big.NewInt(points))
	return out.Quo(out, big.NewInt(bpsDenom))
}

// buildAwards pairs every participant with its finish position, XP and prize.
func buildAwards(race *model.Race, positions []uint64, split model.PrizeSplit) ([]model.Award, error) {
	if err := validatePositions(race, positions); err != nil {
		return nil, err
	}
	awards := make([]model.Award, 0, len(positions))
	for i, tokenID := range positions {
		p, _ := race.Participant(tokenID)
		pos := i + 1
		fee := new(big.Int)
		if race.EntryFee != nil {
			fee.Set(race.EntryFee)
		}
		awards = append(awards, model.Award{
			TokenID:  tokenID,
			Racer:    p.RacerAddress,
			Position: pos,
			XP:       model.XPForPosition(pos),
			Prize:    split.Prize(pos),
			Wagered:  fee,
		})
	}
	return awards, nil
}

// validatePositions requires positions to be a permutation of the race's
// participant token ids.
func validatePositions(race *model.Race, positions []uint64) error {
	if len(positions) != model.RaceSize || len(race.Participants) != model.RaceSize {
		return fmt.Errorf("%w: %d positions for %d participants", ErrInvalidEvent, len(positions), len(race.Participants))
	}
	seen := make(map[uint64]struct{}, len(positions))
	for _, id := range positions {
		if _, ok := race.Participant(id); !ok {
			return fmt.Errorf("%w: token %d did not enter race %d", ErrInvalidEvent, id, race.RaceID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: token %d placed twice", ErrInvalidEvent, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
