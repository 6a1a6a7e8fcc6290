package settlement

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
	"github.com/stretchr/testify/require"
)

func TestSplitPrizePool(t *testing.T) {
	tests := []struct {
		name    string
		pool    *big.Int
		creator string
		prizes  [model.RaceSize]string
	}{
		{
			name:    "even pool",
			pool:    big.NewInt(6000),
			creator: "600",
			prizes:  [model.RaceSize]string{"2700", "1620", "1080", "0", "0", "0"},
		},
		{
			name:    "dust goes to first place",
			pool:    big.NewInt(7),
			creator: "0",
			prizes:  [model.RaceSize]string{"4", "2", "1", "0", "0", "0"},
		},
		{
			name:    "empty pool",
			pool:    new(big.Int),
			creator: "0",
			prizes:  [model.RaceSize]string{"0", "0", "0", "0", "0", "0"},
		},
		{
			name:    "nil pool",
			pool:    nil,
			creator: "0",
			prizes:  [model.RaceSize]string{"0", "0", "0", "0", "0", "0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitPrizePool(tt.pool)
			if got.CreatorFee.String() != tt.creator {
				t.Errorf("CreatorFee = %s, want %s", got.CreatorFee, tt.creator)
			}
			for i, want := range tt.prizes {
				if got.Prizes[i].String() != want {
					t.Errorf("Prizes[%d] = %s, want %s", i, got.Prizes[i], want)
				}
			}
		})
	}
}

func TestSplitPrizePool_ConservesPool(t *testing.T) {
	gen := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		pool := new(big.Int).Mul(big.NewInt(gen.Int64N(1<<40)), big.NewInt(gen.Int64N(1_000_000)+1))
		split := SplitPrizePool(pool)

		sum := new(big.Int).Set(split.CreatorFee)
		for _, p := range split.Prizes {
			require.GreaterOrEqual(t, p.Sign(), 0)
			sum.Add(sum, p)
		}
		require.Zero(t, sum.Cmp(pool), "split of %s sums to %s", pool, sum)
		require.GreaterOrEqual(t, split.Prizes[0].Cmp(split.Prizes[1]), 0)
		require.GreaterOrEqual(t, split.Prizes[1].Cmp(split.Prizes[2]), 0)
	}
}

func TestBuildAwards(t *testing.T) {
	race := &model.Race{RaceID: 1, EntryFee: big.NewInt(10)}
	for i := uint64(1); i <= model.RaceSize; i++ {
		race.Participants = append(race.Participants, model.Participant{RatTokenID: i, RacerAddress: "0xr"})
	}
	split := SplitPrizePool(big.NewInt(60))

	awards, err := buildAwards(race, []uint64{3, 1, 2, 6, 5, 4}, split)
	require.NoError(t, err)
	require.Len(t, awards, model.RaceSize)
	require.Equal(t, uint64(3), awards[0].TokenID)
	require.Equal(t, 100, awards[0].XP)
	require.Equal(t, 60, awards[1].XP)
	require.Equal(t, 40, awards[2].XP)
	require.Equal(t, 15, awards[5].XP)
	require.Zero(t, awards[3].Prize.Sign())
	require.Equal(t, "10", awards[4].Wagered.String())

	_, err = buildAwards(race, []uint64{1, 1, 2, 3, 4, 5}, split)
	require.ErrorIs(t, err, ErrInvalidEvent)
	_, err = buildAwards(race, []uint64{1, 2, 3}, split)
	require.ErrorIs(t, err, ErrInvalidEvent)
}

func TestLevelForXP(t *testing.T) {
	require.Equal(t, 1, model.LevelForXP(0))
	require.Equal(t, 1, model.LevelForXP(249))
	require.Equal(t, 2, model.LevelForXP(250))
	require.Equal(t, 5, model.LevelForXP(1000))
}
