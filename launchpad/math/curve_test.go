package math

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
	"github.com/gamingterminal/launchpad-go/u128"
)

// The reference launch: 1B supply split 690M trading / 310M LP, raising
// 10 quote units (1e10 raw) with price factor 1.
func testCurveConfig() shared.CurveConfig {
	return shared.CurveConfig{
		AlphaAbs:         u128.MustFromString("76000000000000"),
		Beta:             u128.MustFromString("107000000000000000"),
		PriceFactorNum:   1,
		PriceFactorDenom: 1,
		GammaS:           10_000_000_000,
		GammaM:           690_000_000,
		OmegaM:           310_000_000,
		Decimals: shared.Decimals{
			Alpha: u128.MustFromString("10000000"),
			Beta:  u128.MustFromString("1000000000"),
			Quote: shared.DecimalsQuote,
		},
	}
}

func TestDeltaBaseOutIntegratesTheWholeRaise(t *testing.T) {
	cfg := testCurveConfig()

	// integrating the full raise clears (almost exactly) the tradable
	// allocation; only integer truncation is lost
	out, err := DeltaBaseOut(&cfg, 0, cfg.GammaS)
	require.NoError(t, err)
	require.LessOrEqual(t, out, cfg.GammaM)
	require.Greater(t, out, cfg.GammaM-2)
}

func TestDeltaBaseOutMarginalOutputFalls(t *testing.T) {
	cfg := testCurveConfig()
	const step = 100_000_000 // 0.1 quote units

	prev, err := DeltaBaseOut(&cfg, 0, step)
	require.NoError(t, err)
	for s := uint64(step); s < 10*step; s += step {
		next, err := DeltaBaseOut(&cfg, s, s+step)
		require.NoError(t, err)
		require.Less(t, next, prev, "equal quote input must buy strictly fewer tokens later")
		prev = next
	}
}

func TestDeltaBaseOutIsAdditive(t *testing.T) {
	cfg := testCurveConfig()

	whole, err := DeltaBaseOut(&cfg, 0, 2_000_000_000)
	require.NoError(t, err)
	first, err := DeltaBaseOut(&cfg, 0, 1_000_000_000)
	require.NoError(t, err)
	second, err := DeltaBaseOut(&cfg, 1_000_000_000, 2_000_000_000)
	require.NoError(t, err)

	// two half-integrations floor at most one unit each
	require.LessOrEqual(t, first+second, whole)
	require.LessOrEqual(t, whole-(first+second), uint64(2))
}

func TestDeltaBaseOutRejectsInvertedInterval(t *testing.T) {
	cfg := testCurveConfig()
	_, err := DeltaBaseOut(&cfg, 100, 50)
	require.ErrorIs(t, err, shared.ErrArithmeticOverflow)
}

func TestDeltaQuoteOutInvertsDeltaBaseOut(t *testing.T) {
	cfg := testCurveConfig()

	for _, sB := range []uint64{100_000_000, 1_000_000_000, 5_000_000_000} {
		bought, err := DeltaBaseOut(&cfg, 0, sB)
		require.NoError(t, err)

		back, err := DeltaQuoteOut(&cfg, sB, bought)
		require.NoError(t, err)

		// flooring in both directions always favors the pool
		require.LessOrEqual(t, back, sB)
		require.Greater(t, back, sB-32, "round trip should lose only truncation dust")
	}
}

func TestDeltaQuoteOutGrowsWithAmount(t *testing.T) {
	cfg := testCurveConfig()
	const sB = 2_000_000_000

	prev := uint64(0)
	for _, m := range []uint64{1_000_000, 5_000_000, 25_000_000, 100_000_000} {
		out, err := DeltaQuoteOut(&cfg, sB, m)
		require.NoError(t, err)
		require.Greater(t, out, prev)
		prev = out
	}
}
