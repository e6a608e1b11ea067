package shared

import (
	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

type Rounding uint8

const (
	RoundingDown Rounding = iota
	RoundingUp
)

// Reserve is a pool-held balance of one asset plus its custody references.
type Reserve struct {
	Tokens uint64
	Mint   solanago.PublicKey
	Vault  solanago.PublicKey
}

// Decimals holds the fixed-point scale factors chosen at pool creation.
// Alpha and Beta are the scale denominators of the curve coefficients;
// Quote is the raw-unit denominator of the quote asset (1e9 for SOL).
type Decimals struct {
	Alpha bin.Uint128
	Beta  bin.Uint128
	Quote uint64
}

// CurveConfig parameterizes the linear bonding curve. The curve maps the
// cumulative quote raised s to a tokens-per-quote rate
//
//	r(s) = Beta/(BetaDec*Quote) - Alpha*s/(AlphaDec*Quote^2)
//
// so the unit price of the base token strictly increases as the raise
// progresses. GammaS is the quote-raise ceiling, GammaM the tradable base
// allocation, OmegaM the reserved LP/creator allocation.
type CurveConfig struct {
	AlphaAbs         bin.Uint128
	Beta             bin.Uint128
	PriceFactorNum   uint64
	PriceFactorDenom uint64
	GammaS           uint64
	GammaM           uint64
	OmegaM           uint64
	Decimals         Decimals
}

// Fees are fixed-point fractions over FeePrecision. The base leg carries no
// fee in the reference configuration; only the quote leg does.
type Fees struct {
	FeeBaseNum  uint64
	FeeQuoteNum uint64
}

// Pool is the persistent bonding-curve pool account. One per launched token;
// created once, mutated by every trade, never deleted.
type Pool struct {
	BaseReserve      Reserve
	QuoteReserve     Reserve
	AdminFeeBase     uint64
	AdminFeeQuote    uint64
	FeeVault         solanago.PublicKey
	Creator          solanago.PublicKey
	Fees             Fees
	Curve            CurveConfig
	ReservedLP       uint64
	AllocatedAirdrop uint64
	Locked           bool
	VestingUntil     int64
}

// PointsEpoch is the versioned reward-rate configuration shared across
// pools. Rotating the epoch never retroactively changes past trades.
type PointsEpoch struct {
	EpochNumber         uint64
	PointsPerQuoteNum   uint64
	PointsPerQuoteDenom uint64
}

// StakingAllocation is the airdrop distributor's pending balance. The pool
// core references it but does not own it.
type StakingAllocation struct {
	PendingAirdrop uint64
}

// SwapAmount is the staged outcome of pricing one trade: nothing in it has
// been applied to the pool yet.
type SwapAmount struct {
	AmountIn    uint64
	AmountOut   uint64
	AdminFeeIn  uint64
	AdminFeeOut uint64
}

// SwapPreview is the read-only quote for a trade.
type SwapPreview struct {
	AmountOut uint64
	Fee       uint64
}

// SwapResult is the realized outcome of a committed trade. EpochNumber is
// the points epoch captured at commit time.
type SwapResult struct {
	AmountIn       uint64
	AmountOut      uint64
	Fee            uint64
	PointsCredited uint64
	EpochNumber    uint64
}
