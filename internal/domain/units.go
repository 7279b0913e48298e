package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// TokenDecimals is the decimal precision assumed for contribution and pot
// tokens. The feed only emits 18-decimal tokens.
const TokenDecimals = 18

var weiPerToken = new(big.Float).SetInt(new(big.Int).SetUint64(params.Ether))

// ToWei converts a human-unit token amount into raw 18-decimal integer
// units, truncating any sub-wei remainder.
func ToWei(amount float64) *big.Int {
	if amount <= 0 {
		return new(big.Int)
	}

	f := new(big.Float).SetPrec(256).SetFloat64(amount)
	f.Mul(f, weiPerToken)

	wei, _ := f.Int(nil)
	return wei
}

// FromWei converts raw 18-decimal integer units into a human-unit amount.
// Precision loss for amounts beyond float64 range mirrors the aggregate
// USD arithmetic, which is float-based throughout.
func FromWei(amount *big.Int) float64 {
	if amount == nil || amount.Sign() == 0 {
		return 0
	}

	f := new(big.Float).SetPrec(256).SetInt(amount)
	f.Quo(f, weiPerToken)

	out, _ := f.Float64()
	return out
}
