package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/ratrace-oracle/internal/model"
)

// RatNFT reads rat stats from the NFT contract.
type RatNFT struct {
	contract *bind.BoundContract
}

// NewRatNFT binds the NFT contract at address.
func NewRatNFT(backend Backend, address string) (*RatNFT, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid rat nft address %q", address)
	}
	return &RatNFT{
		contract: bind.NewBoundContract(common.HexToAddress(address), ratABI, backend, backend, backend),
	}, nil
}

// RatStats returns the current stats and owner of tokenID.
func (n *RatNFT) RatStats(ctx context.Context, tokenID uint64) (model.RatStats, error) {
	opts := &bind.CallOpts{Context: ctx}
	id := new(big.Int).SetUint64(tokenID)

	var stats []interface{}
	if err := n.contract.Call(opts, &stats, "getRatStats", id); err != nil {
		return model.RatStats{}, fmt.Errorf("call getRatStats(%d): %w", tokenID, err)
	}
	if len(stats) != 4 {
		return model.RatStats{}, fmt.Errorf("getRatStats(%d): unexpected %d outputs", tokenID, len(stats))
	}
	stamina, okS := stats[0].(uint8)
	agility, okA := stats[1].(uint8)
	speed, okP := stats[2].(uint8)
	bloodline, okB := stats[3].(string)
	if !okS || !okA || !okP || !okB {
		return model.RatStats{}, fmt.Errorf("getRatStats(%d): unexpected output types", tokenID)
	}

	var owner []interface{}
	if err := n.contract.Call(opts, &owner, "ownerOf", id); err != nil {
		return model.RatStats{}, fmt.Errorf("call ownerOf(%d): %w", tokenID, err)
	}
	if len(owner) != 1 {
		return model.RatStats{}, fmt.Errorf("ownerOf(%d): unexpected %d outputs", tokenID, len(owner))
	}
	ownerAddr, ok := owner[0].(common.Address)
	if !ok {
		return model.RatStats{}, fmt.Errorf("ownerOf(%d): unexpected output %T", tokenID, owner[0])
	}

	return model.RatStats{
		TokenID:   tokenID,
		Owner:     model.NormalizeAddress(ownerAddr.Hex()),
		Stamina:   int(stamina),
		Agility:   int(agility),
		Speed:     int(speed),
		Bloodline: model.Bloodline(bloodline),
	}, nil
}
