package simulation

import (
	"encoding/binary"
	"encoding/hex"
	"slices"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Seed keys the random draws of a simulation.
type Seed [32]byte

// String returns the 0x-prefixed hex form of the seed.
func (s Seed) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// DeriveSeed computes keccak256(raceID || blockHash || sorted tokenIDs).
//
// blockHash is the hash of the block that mined the RaceStarted transaction, so
// the outcome is reproducible from public data but unknowable before the race
// starts. A non-hex blockHash is hashed as raw bytes.
func DeriveSeed(raceID uint64, blockHash string, tokenIDs []uint64) Seed {
	h := sha3.NewLegacyKeccak256()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], raceID)
	h.Write(buf[:])

	raw := strings.TrimPrefix(strings.ToLower(blockHash), "0x")
	if decoded, err := hex.DecodeString(raw); err == nil && len(decoded) > 0 {
		h.Write(decoded)
	} else {
		h.Write([]byte(blockHash))
	}

	ids := slices.Clone(tokenIDs)
	slices.Sort(ids)
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf[:], id)
		h.Write(buf[:])
	}

	var seed Seed
	copy(seed[:], h.Sum(nil))
	return seed
}
