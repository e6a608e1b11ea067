package math

import (
	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// FeeAmount applies a fixed-point fee fraction to an amount with integer
// truncation. The fee never rounds up against the trader.
func FeeAmount(amount, feeNum uint64) (uint64, error) {
	if feeNum == 0 {
		return 0, nil
	}
	return MulDivU64(amount, feeNum, shared.FeePrecision, shared.RoundingDown)
}

// QuoteFee prices the quote-leg fee of a trade.
func QuoteFee(fees shared.Fees, amount uint64) (uint64, error) {
	return FeeAmount(amount, fees.FeeQuoteNum)
}

// BaseFee prices the base-leg fee of a trade. Zero in the reference
// configuration.
func BaseFee(fees shared.Fees, amount uint64) (uint64, error) {
	return FeeAmount(amount, fees.FeeBaseNum)
}
