package shared

const (
	// FeePrecision is the shared denominator of all fee fractions.
	FeePrecision = 1_000_000_000

	// DefaultQuoteFeeNum is a 1% protocol fee on the quote leg.
	DefaultQuoteFeeNum = 10_000_000
	// DefaultBaseFeeNum is zero: the base leg carries no fee.
	DefaultBaseFeeNum = 0

	// DecimalsQuote is the raw-unit denominator of the quote asset.
	DecimalsQuote = 1_000_000_000

	// GlobalAirdropCap bounds the per-pool airdrop carve-out.
	GlobalAirdropCap = 100_000_000

	SecondsPerDay = 86_400

	// Vesting periods outside [MinVestingPeriod, MaxVestingPeriod] are
	// rejected at creation, not clamped.
	MinVestingPeriod = SecondsPerDay
	MaxVestingPeriod = 13 * SecondsPerDay
)
