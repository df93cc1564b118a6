package orderbuilder

import (
	"fmt"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
)

// ContractConfig holds the settlement contract addresses of one chain.
type ContractConfig struct {
	Exchange          common.Address
	NegRiskAdapter    common.Address
	NegRiskExchange   common.Address
	Collateral        common.Address
	ConditionalTokens common.Address
}

// VerifyingContract selects the exchange an order settles through. Neg-risk
// markets route to the alternate exchange contract.
func (c *ContractConfig) VerifyingContract(negRisk bool) common.Address {
	if negRisk {
		return c.NegRiskExchange
	}
	return c.Exchange
}

var polygonContracts = ContractConfig{
	Exchange:          common.HexToAddress("0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E"),
	NegRiskAdapter:    common.HexToAddress("0xd91E80cF2E7be2e162c6513ceD06f1dD0dA35296"),
	NegRiskExchange:   common.HexToAddress("0xC5d563A36AE78145C45a50134d48A1215220f80a"),
	Collateral:        common.HexToAddress("0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174"),
	ConditionalTokens: common.HexToAddress("0x4D97DCd97eC945f40cF65F87097ACe5EA0476045"),
}

var amoyContracts = ContractConfig{
	Exchange:          common.HexToAddress("0xdFE02Eb6733538f8Ea35D585af8DE5958AD99E40"),
	NegRiskAdapter:    common.HexToAddress("0xd91E80cF2E7be2e162c6513ceD06f1dD0dA35296"),
	NegRiskExchange:   common.HexToAddress("0xC5d563A36AE78145C45a50134d48A1215220f80a"),
	Collateral:        common.HexToAddress("0x9c4e1703476e875070ee25b56a58b008cfb8fa78"),
	ConditionalTokens: common.HexToAddress("0x69308FB512518e39F9b16112fA8d994F4e2Bf8bB"),
}

// GetContractConfig returns the contract set for a supported chain.
func GetContractConfig(chain clobtypes.Chain) (*ContractConfig, error) {
	switch chain {
	case clobtypes.ChainPolygon:
		return &polygonContracts, nil
	case clobtypes.ChainAmoy:
		return &amoyContracts, nil
	}
	return nil, fmt.Errorf("invalid network: chain ID %d", chain.ID())
}

// Token decimals shared by collateral and conditional tokens.
const (
	CollateralTokenDecimals  = 6
	ConditionalTokenDecimals = 6
)
