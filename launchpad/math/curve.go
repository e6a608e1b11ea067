package math

import (
	"math/big"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// The pool prices trades by integrating the tokens-per-quote rate
//
//	r(s) = Beta/(BetaDec*Q) - AlphaAbs*s/(AlphaDec*Q^2)
//
// over the cumulative-quote interval a trade moves the pool across, where s
// is the quote raised so far and Q the quote raw-unit denominator. r falls
// as the raise progresses, so the unit price of the base token strictly
// rises. Creation-time checks keep r positive on [0, GammaS].

func two() *big.Int { return big.NewInt(2) }

// DeltaBaseOut integrates r(s) from sA to sB: the base tokens paid out for
// pushing the quote reserve from sA up to sB. Pure; floors the result.
func DeltaBaseOut(cfg *shared.CurveConfig, sA, sB uint64) (uint64, error) {
	if sB < sA {
		return 0, shared.ErrArithmeticOverflow
	}
	alpha := U128ToBig(cfg.AlphaAbs)
	beta := U128ToBig(cfg.Beta)
	alphaDec := U128ToBig(cfg.Decimals.Alpha)
	betaDec := U128ToBig(cfg.Decimals.Beta)
	q := new(big.Int).SetUint64(cfg.Decimals.Quote)
	a := new(big.Int).SetUint64(sA)
	b := new(big.Int).SetUint64(sB)

	// 2*beta*Q*alphaDec*(sB-sA)
	left := Mul(Mul(Mul(Mul(two(), beta), q), alphaDec), new(big.Int).Sub(b, a))
	// alpha*betaDec*(sB^2 - sA^2)
	squares := new(big.Int).Sub(Mul(b, b), Mul(a, a))
	right := Mul(Mul(alpha, betaDec), squares)

	num, err := Sub(left, right)
	if err != nil {
		// the interval crosses the curve root; no finite price exists
		return 0, shared.ErrArithmeticOverflow
	}
	denom := Mul(Mul(Mul(two(), alphaDec), betaDec), Mul(q, q))
	out, err := Div(num, denom)
	if err != nil {
		return 0, err
	}
	return ToUint64(out)
}

// DeltaQuoteOut inverts the integral: the quote paid out for absorbing
// deltaBase tokens back into the curve when the quote reserve holds sB.
// Solves (alpha/2)*d^2 + (beta - alpha*sB)*d = deltaBase for d via the
// quadratic formula, flooring so the pool never over-pays.
func DeltaQuoteOut(cfg *shared.CurveConfig, sB, deltaBase uint64) (uint64, error) {
	alpha := U128ToBig(cfg.AlphaAbs)
	beta := U128ToBig(cfg.Beta)
	alphaDec := U128ToBig(cfg.Decimals.Alpha)
	betaDec := U128ToBig(cfg.Decimals.Beta)
	q := new(big.Int).SetUint64(cfg.Decimals.Quote)
	s := new(big.Int).SetUint64(sB)
	m := new(big.Int).SetUint64(deltaBase)

	// u = beta*alphaDec*Q - alpha*betaDec*sB, the rate at sB over the
	// common denominator D = alphaDec*betaDec*Q^2.
	u, err := Sub(Mul(Mul(beta, alphaDec), q), Mul(Mul(alpha, betaDec), s))
	if err != nil {
		return 0, shared.ErrArithmeticOverflow
	}
	d := Mul(Mul(alphaDec, betaDec), Mul(q, q))

	// disc = u^2 + 2*alpha*betaDec*deltaBase*D
	disc := Add(Mul(u, u), Mul(Mul(Mul(two(), alpha), betaDec), Mul(m, d)))
	root := Sqrt(disc)

	num, err := Sub(root, u)
	if err != nil {
		return 0, shared.ErrArithmeticOverflow
	}
	out, err := Div(num, Mul(alpha, betaDec))
	if err != nil {
		return 0, err
	}
	return ToUint64(out)
}
