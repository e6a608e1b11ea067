package launchpad

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gamingterminal/launchpad-go/launchpad/math"
	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// PointsLedger is the external collaborator holding the distributable
// points balance and the per-referrer running totals. The pool core
// references it, it does not own it.
type PointsLedger interface {
	// Available reports the points still distributable.
	Available() uint64
	// Credit adds points to the referrer's running total.
	Credit(referrer solanago.PublicKey, points uint64) error
}

// SwapPoints computes the reward points for a gross quote amount under the
// given epoch. Saturates instead of overflowing so accrual can never abort
// a committed trade.
func SwapPoints(quoteAmount uint64, epoch shared.PointsEpoch) uint64 {
	if epoch.PointsPerQuoteDenom == 0 {
		return 0
	}
	prod := new(big.Int).Mul(new(big.Int).SetUint64(quoteAmount), new(big.Int).SetUint64(epoch.PointsPerQuoteNum))
	prod.Div(prod, new(big.Int).SetUint64(epoch.PointsPerQuoteDenom))
	return math.SaturatingU64(prod)
}

// accruePoints runs after the reserve mutation has committed. All computed
// points go to the referrer; no referrer means nothing accrues. The credit
// is clamped to the ledger's remaining balance, and a ledger failure is
// reported, never propagated: the swap has already happened.
func (l *Launchpad) accruePoints(grossQuote uint64, epoch shared.PointsEpoch, referrer *solanago.PublicKey) uint64 {
	if referrer == nil || l.points == nil {
		return 0
	}
	points := SwapPoints(grossQuote, epoch)
	if available := l.points.Available(); points > available {
		points = available
	}
	if points == 0 {
		return 0
	}
	if err := l.points.Credit(*referrer, points); err != nil {
		l.log.Warn("points credit failed",
			zap.Stringer("referrer", *referrer),
			zap.Uint64("points", points),
			zap.Error(err),
		)
		return 0
	}
	return points
}
