package math

import (
	"math"
	"math/big"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, shared.ErrArithmeticOverflow
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, shared.ErrDivisionByZero
	}
	return new(big.Int).Div(a, b), nil
}

// MulDiv computes x*y/denominator over an arbitrary-width intermediate.
func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, shared.ErrDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	if rounding == shared.RoundingUp {
		numerator := new(big.Int).Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return new(big.Int).Div(numerator, denominator), nil
	}
	return new(big.Int).Div(prod, denominator), nil
}

// MulDivU64 is the scaled multiply-divide primitive all reserve-affecting
// computation routes through: a*b/denom with a 128-bit-safe intermediate,
// failing when denom is zero or the result does not fit uint64.
func MulDivU64(a, b, denom uint64, rounding shared.Rounding) (uint64, error) {
	if denom == 0 {
		return 0, shared.ErrDivisionByZero
	}
	r, err := MulDiv(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b), new(big.Int).SetUint64(denom), rounding)
	if err != nil {
		return 0, err
	}
	return ToUint64(r)
}

// ToUint64 narrows a big integer to uint64, rejecting negatives and values
// above math.MaxUint64.
func ToUint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, shared.ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}

// SaturatingU64 narrows a big integer to uint64, clamping instead of
// failing. Used where overflow must not abort an already-committed trade.
func SaturatingU64(v *big.Int) uint64 {
	if v.Sign() <= 0 {
		return 0
	}
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}

// Sqrt returns the integer square root of value (floor).
func Sqrt(value *big.Int) *big.Int {
	return new(big.Int).Sqrt(value)
}
