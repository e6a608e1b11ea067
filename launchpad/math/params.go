package math

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// Curve coefficients are a closed-form function of the allocation split and
// the target raise, fixed once at creation:
//
//	L     = OmegaM * PriceFactorNum / PriceFactorDenom
//	alpha = 2*(GammaM - L) * QDenom^2 / GammaS^2
//	beta  = (2*GammaM - L) * QDenom  / GammaS
//
// alpha carries a dynamically chosen decimal scale so that small slopes
// survive integer division; beta is scaled by the quote denominator.

func priceFactorLeft(omegaM *big.Int, pfNum, pfDenom uint64) (*big.Int, error) {
	return MulDiv(omegaM, new(big.Int).SetUint64(pfNum), new(big.Int).SetUint64(pfDenom), shared.RoundingDown)
}

// CheckSlope rejects parameter sets whose tokens-per-quote rate would not
// fall as the raise progresses.
func CheckSlope(gammaM, omegaM *big.Int, pfNum, pfDenom uint64) error {
	left, err := priceFactorLeft(omegaM, pfNum, pfDenom)
	if err != nil {
		return err
	}
	if left.Cmp(gammaM) >= 0 {
		return fmt.Errorf("%w: curve must be negatively sloped in tokens per quote", shared.ErrInvalidCurve)
	}
	return nil
}

// CheckIntercept rejects parameter sets whose rate would start non-positive.
func CheckIntercept(gammaM, omegaM *big.Int, pfNum, pfDenom uint64) error {
	left, err := priceFactorLeft(omegaM, pfNum, pfDenom)
	if err != nil {
		return err
	}
	if Mul(two(), gammaM).Cmp(left) <= 0 {
		return fmt.Errorf("%w: curve intercept must be positive", shared.ErrInvalidCurve)
	}
	return nil
}

func digits(v *big.Int) int {
	if v.Sign() == 0 {
		return 1
	}
	return len(v.Text(10))
}

// decimalsForScale picks the alpha scale denominator from the order of
// magnitude of alpha's rational form. Too small a magnitude cannot be
// represented without collapsing the slope to zero.
func decimalsForScale(scale int) (*big.Int, error) {
	switch {
	case scale <= 4:
		return nil, fmt.Errorf("%w: curve slope magnitude too low", shared.ErrInvalidCurve)
	case scale >= 13:
		return big.NewInt(1), nil
	default:
		// 5 -> 1e8 down to 12 -> 1e1
		exp := 13 - scale
		return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil), nil
	}
}

// ComputeAlphaAbs derives the curve slope and its scale denominator.
func ComputeAlphaAbs(gammaS, gammaSDenom, gammaM, omegaM *big.Int, pfNum, pfDenom uint64) (alpha, alphaDec *big.Int, err error) {
	if err := CheckSlope(gammaM, omegaM, pfNum, pfDenom); err != nil {
		return nil, nil, err
	}
	left, err := priceFactorLeft(omegaM, pfNum, pfDenom)
	if err != nil {
		return nil, nil, err
	}
	diff, err := Sub(gammaM, left)
	if err != nil {
		return nil, nil, err
	}
	num := Mul(Mul(two(), diff), Mul(gammaSDenom, gammaSDenom))
	denom := Mul(gammaS, gammaS)
	if num.Cmp(denom) <= 0 {
		return nil, nil, fmt.Errorf("%w: quote raise target too large for the supply split", shared.ErrInvalidCurve)
	}
	alphaDec, err = decimalsForScale(digits(num) - digits(denom))
	if err != nil {
		return nil, nil, err
	}
	alpha, err = Div(Mul(num, alphaDec), denom)
	if err != nil {
		return nil, nil, err
	}
	return alpha, alphaDec, nil
}

// ComputeBeta derives the curve intercept at the given scale denominator.
func ComputeBeta(gammaS, gammaSDenom, gammaM, omegaM *big.Int, pfNum, pfDenom uint64, betaDec *big.Int) (*big.Int, error) {
	if err := CheckIntercept(gammaM, omegaM, pfNum, pfDenom); err != nil {
		return nil, err
	}
	left, err := priceFactorLeft(omegaM, pfNum, pfDenom)
	if err != nil {
		return nil, err
	}
	num, err := Sub(Mul(two(), gammaM), left)
	if err != nil {
		return nil, err
	}
	return Div(Mul(Mul(num, gammaSDenom), betaDec), gammaS)
}

// BuildCurveParams are the human-facing launch parameters a curve is built
// from. TargetQuoteRaise is in whole quote units (e.g. SOL), converted to
// raw units with QuoteDecimals.
type BuildCurveParams struct {
	TradingAllocation uint64
	LPAllocation      uint64
	TargetQuoteRaise  decimal.Decimal
	QuoteDecimals     uint64
	PriceFactorNum    uint64
	PriceFactorDenom  uint64
}

// BuildCurveConfig derives the full curve configuration once at creation.
// Factored out of pool creation so the closed-form derivation is testable
// on its own.
func BuildCurveConfig(p BuildCurveParams) (shared.CurveConfig, error) {
	if p.PriceFactorDenom == 0 {
		return shared.CurveConfig{}, shared.ErrDivisionByZero
	}
	raw := p.TargetQuoteRaise.Mul(decimal.NewFromUint64(p.QuoteDecimals))
	if !raw.IsInteger() || raw.Sign() <= 0 {
		return shared.CurveConfig{}, fmt.Errorf("%w: quote raise target must be a positive raw amount", shared.ErrInvalidCurve)
	}
	gammaS, err := ToUint64(raw.BigInt())
	if err != nil {
		return shared.CurveConfig{}, err
	}

	gs := new(big.Int).SetUint64(gammaS)
	gsDenom := new(big.Int).SetUint64(p.QuoteDecimals)
	gm := new(big.Int).SetUint64(p.TradingAllocation)
	om := new(big.Int).SetUint64(p.LPAllocation)

	alpha, alphaDec, err := ComputeAlphaAbs(gs, gsDenom, gm, om, p.PriceFactorNum, p.PriceFactorDenom)
	if err != nil {
		return shared.CurveConfig{}, err
	}
	betaDec := gsDenom
	beta, err := ComputeBeta(gs, gsDenom, gm, om, p.PriceFactorNum, p.PriceFactorDenom, betaDec)
	if err != nil {
		return shared.CurveConfig{}, err
	}

	alphaU, err := U128FromBig(alpha)
	if err != nil {
		return shared.CurveConfig{}, err
	}
	betaU, err := U128FromBig(beta)
	if err != nil {
		return shared.CurveConfig{}, err
	}
	alphaDecU, err := U128FromBig(alphaDec)
	if err != nil {
		return shared.CurveConfig{}, err
	}
	betaDecU, err := U128FromBig(betaDec)
	if err != nil {
		return shared.CurveConfig{}, err
	}

	return shared.CurveConfig{
		AlphaAbs:         alphaU,
		Beta:             betaU,
		PriceFactorNum:   p.PriceFactorNum,
		PriceFactorDenom: p.PriceFactorDenom,
		GammaS:           gammaS,
		GammaM:           p.TradingAllocation,
		OmegaM:           p.LPAllocation,
		Decimals: shared.Decimals{
			Alpha: alphaDecU,
			Beta:  betaDecU,
			Quote: p.QuoteDecimals,
		},
	}, nil
}
