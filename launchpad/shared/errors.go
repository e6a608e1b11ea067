package shared

import "errors"

// Every error here is terminal for the requesting operation: the pool state
// is guaranteed unchanged and the caller must correct the input and submit a
// fresh operation. Callers match with errors.Is.
var (
	ErrZeroAmount            = errors.New("trade amount is zero")
	ErrArithmeticOverflow    = errors.New("arithmetic overflow")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrSlippageExceeded      = errors.New("slippage exceeded")
	ErrPoolIsLocked          = errors.New("pool is locked")
	ErrVestingNotElapsed     = errors.New("vesting period has not elapsed")
	ErrInvalidAllocation     = errors.New("invalid allocation")
	ErrInvalidFees           = errors.New("invalid fee configuration")
	ErrInvalidVestingPeriod  = errors.New("invalid vesting period")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidCurve          = errors.New("invalid curve parameters")
)
