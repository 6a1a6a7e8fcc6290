package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const raceContractABI = `[
  {"type":"function","name":"finishRace","stateMutability":"nonpayable",
   "inputs":[{"name":"raceId","type":"uint256"},{"name":"positions","type":"uint256[]"}],"outputs":[]},
  {"type":"function","name":"cancelRace","stateMutability":"nonpayable",
   "inputs":[{"name":"raceId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"oracle","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const ratNFTABI = `[
  {"type":"function","name":"getRatStats","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],
   "outputs":[{"name":"stamina","type":"uint8"},{"name":"agility","type":"uint8"},{"name":"speed","type":"uint8"},{"name":"bloodline","type":"string"}]},
  {"type":"function","name":"ownerOf","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]}
]`

var (
	raceABI = mustParseABI(raceContractABI)
	ratABI  = mustParseABI(ratNFTABI)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}
