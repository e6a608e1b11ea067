package launchpad

import (
	"errors"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

func testKey(seed byte) solanago.PublicKey {
	var b [32]byte
	for i := range b {
		b[i] = seed
	}
	return solanago.PublicKeyFromBytes(b[:])
}

var (
	testAdmin   = testKey(0xAD)
	testCreator = testKey(0xC0)
)

const testNow = int64(1_700_000_000)

// 1B supply split 690M trading / 310M LP with a 100M airdrop carve-out,
// raising 10 quote units (1e10 raw) at a 1% quote fee.
func testCreateParams() CreateParams {
	return CreateParams{
		TotalSupply:       1_000_000_000,
		TradingAllocation: 690_000_000,
		LPAllocation:      310_000_000,
		AirdropAllocation: 100_000_000,
		VestingPeriod:     7 * shared.SecondsPerDay,
		Fees: shared.Fees{
			FeeBaseNum:  shared.DefaultBaseFeeNum,
			FeeQuoteNum: shared.DefaultQuoteFeeNum,
		},
		TargetQuoteRaise: decimal.NewFromInt(10),
		QuoteDecimals:    shared.DecimalsQuote,
		PriceFactorNum:   1,
		PriceFactorDenom: 1,

		BaseMint:   testKey(1),
		BaseVault:  testKey(2),
		QuoteMint:  testKey(3),
		QuoteVault: testKey(4),
		FeeVault:   testKey(5),
		Creator:    testCreator,
	}
}

func testPool(t *testing.T, opts ...Option) (*Launchpad, *Pool) {
	t.Helper()
	l := New(testAdmin, opts...)
	p, err := l.CreatePool(testCreateParams(), testNow)
	require.NoError(t, err)
	return l, p
}

func TestCreatePool(t *testing.T) {
	_, p := testPool(t)
	st := p.State()

	require.Equal(t, uint64(690_000_000), st.BaseReserve.Tokens)
	require.Equal(t, uint64(0), st.QuoteReserve.Tokens)
	require.Equal(t, uint64(210_000_000), st.ReservedLP)
	require.Equal(t, uint64(100_000_000), st.AllocatedAirdrop)
	require.Equal(t, testNow+7*shared.SecondsPerDay, st.VestingUntil)
	require.False(t, st.Locked)
	require.Equal(t, uint64(10_000_000_000), st.Curve.GammaS)
}

func TestCreatePoolValidation(t *testing.T) {
	l := New(testAdmin)

	p := testCreateParams()
	p.TotalSupply = 999_999_999
	_, err := l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidAllocation)

	p = testCreateParams()
	p.AirdropAllocation = shared.GlobalAirdropCap + 1
	_, err = l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidAllocation)

	p = testCreateParams()
	p.LPAllocation = 50_000_000
	p.TradingAllocation = 950_000_000
	_, err = l.CreatePool(p, testNow) // airdrop larger than the LP bucket
	require.ErrorIs(t, err, shared.ErrInvalidAllocation)

	p = testCreateParams()
	p.TradingAllocation = ^uint64(0)
	p.LPAllocation = p.TotalSupply + 1 // buckets sum past 2^64 back to the total
	_, err = l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidAllocation)

	p = testCreateParams()
	p.VestingPeriod = 50_000 // below one day
	_, err = l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidVestingPeriod)

	p = testCreateParams()
	p.VestingPeriod = 13*shared.SecondsPerDay + 1
	_, err = l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidVestingPeriod)
}

func TestCreatePoolRejectsFeeAtOrAbovePrecision(t *testing.T) {
	l := New(testAdmin)

	// a fee fraction of one or more would make the fee exceed the input,
	// wrapping the net amount and selling the reserve for dust
	p := testCreateParams()
	p.Fees.FeeQuoteNum = 2 * shared.FeePrecision
	_, err := l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidFees)

	p = testCreateParams()
	p.Fees.FeeQuoteNum = shared.FeePrecision
	_, err = l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidFees)

	p = testCreateParams()
	p.Fees.FeeBaseNum = shared.FeePrecision
	_, err = l.CreatePool(p, testNow)
	require.ErrorIs(t, err, shared.ErrInvalidFees)

	// the largest representable fraction is still a valid fee
	p = testCreateParams()
	p.Fees.FeeQuoteNum = shared.FeePrecision - 1
	pool, err := l.CreatePool(p, testNow)
	require.NoError(t, err)

	// and a dust buy against it keeps every amount within what was paid
	res, err := pool.ExecuteBuy(1_000, 0, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, res.Fee, uint64(1_000))
	require.Equal(t, uint64(1_000)-res.Fee, res.AmountIn)
	st := pool.State()
	require.Equal(t, res.AmountIn, st.QuoteReserve.Tokens)
	require.False(t, st.Locked)
}

func TestZeroAmountRejected(t *testing.T) {
	_, p := testPool(t)

	_, err := p.ExecuteBuy(0, 0, nil)
	require.ErrorIs(t, err, shared.ErrZeroAmount)
	_, err = p.ExecuteSell(0, 0)
	require.ErrorIs(t, err, shared.ErrZeroAmount)
	_, err = p.PreviewBuy(0)
	require.ErrorIs(t, err, shared.ErrZeroAmount)
	_, err = p.PreviewSell(0)
	require.ErrorIs(t, err, shared.ErrZeroAmount)
}

func TestBuyChargesFloorFeeOnGrossInput(t *testing.T) {
	_, p := testPool(t)

	res, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), res.Fee) // 1% exactly
	require.Equal(t, uint64(99_000_000), res.AmountIn)

	st := p.State()
	require.Equal(t, uint64(99_000_000), st.QuoteReserve.Tokens)
	require.Equal(t, uint64(1_000_000), st.AdminFeeQuote)
	require.Equal(t, uint64(0), st.AdminFeeBase) // no base-leg fee
	require.Equal(t, uint64(690_000_000)-res.AmountOut, st.BaseReserve.Tokens)
}

func TestBuyFeeTruncates(t *testing.T) {
	_, p := testPool(t)

	// 1% of 199 is 1.99, floored to 1
	pv, err := p.PreviewBuy(199)
	require.NoError(t, err)
	require.Equal(t, uint64(1), pv.Fee)
}

func TestConsecutiveBuysGetStrictlyFewerTokens(t *testing.T) {
	_, p := testPool(t)

	first, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)
	second, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)

	require.Greater(t, first.AmountOut, uint64(0))
	require.Less(t, second.AmountOut, first.AmountOut)
}

func TestPreviewMatchesExecuteAndDoesNotMutate(t *testing.T) {
	_, p := testPool(t)

	before := p.State()
	pv, err := p.PreviewBuy(250_000_000)
	require.NoError(t, err)
	require.Equal(t, before, p.State())

	res, err := p.ExecuteBuy(250_000_000, 0, nil)
	require.NoError(t, err)
	require.Equal(t, pv.AmountOut, res.AmountOut)
	require.Equal(t, pv.Fee, res.Fee)
}

func TestPreviewBuyMonotoneInAmount(t *testing.T) {
	_, p := testPool(t)

	small, err := p.PreviewBuy(100_000_000)
	require.NoError(t, err)
	large, err := p.PreviewBuy(200_000_000)
	require.NoError(t, err)
	require.Greater(t, large.AmountOut, small.AmountOut)
}

func TestBuySlippageLeavesStateUntouched(t *testing.T) {
	_, p := testPool(t)

	pv, err := p.PreviewBuy(100_000_000)
	require.NoError(t, err)

	before := p.State()
	_, err = p.ExecuteBuy(100_000_000, pv.AmountOut+1, nil)
	require.ErrorIs(t, err, shared.ErrSlippageExceeded)
	require.Equal(t, before, p.State())
}

func TestSellSlippageLeavesStateUntouched(t *testing.T) {
	_, p := testPool(t)

	bought, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)

	pv, err := p.PreviewSell(bought.AmountOut)
	require.NoError(t, err)

	before := p.State()
	_, err = p.ExecuteSell(bought.AmountOut, pv.AmountOut+1)
	require.ErrorIs(t, err, shared.ErrSlippageExceeded)
	require.Equal(t, before, p.State())
}

func TestSellOnFreshPoolFails(t *testing.T) {
	_, p := testPool(t)

	_, err := p.ExecuteSell(1_000_000, 0)
	require.ErrorIs(t, err, shared.ErrInsufficientLiquidity)
}

func TestBuySellRoundTripConservesValue(t *testing.T) {
	_, p := testPool(t)

	bought, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)

	sold, err := p.ExecuteSell(bought.AmountOut, 0)
	require.NoError(t, err)

	// rounding and the quote fee both work against the round-tripper
	require.Less(t, sold.AmountOut, bought.AmountIn)

	st := p.State()
	require.Equal(t, uint64(690_000_000), st.BaseReserve.Tokens)
	// every quote unit is either in the reserve or the fee accumulator
	require.Equal(t,
		uint64(100_000_000)-sold.AmountOut,
		st.QuoteReserve.Tokens+st.AdminFeeQuote)
}

func TestTokenConservationAcrossTrades(t *testing.T) {
	_, p := testPool(t)

	var outstanding uint64
	for _, amt := range []uint64{100_000_000, 50_000_000, 250_000_000} {
		res, err := p.ExecuteBuy(amt, 0, nil)
		require.NoError(t, err)
		outstanding += res.AmountOut
	}
	res, err := p.ExecuteSell(outstanding/3, 0)
	require.NoError(t, err)
	outstanding -= res.AmountIn

	st := p.State()
	require.Equal(t, uint64(690_000_000), st.BaseReserve.Tokens+st.AdminFeeBase+outstanding)
}

func TestBuyCompletingRaiseClearsReserveAndLocks(t *testing.T) {
	_, p := testPool(t)

	// net input far above the remaining raise capacity triggers the
	// closing trade: the whole tradable reserve clears
	res, err := p.ExecuteBuy(20_000_000_000, 0, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000_000), res.AmountIn)
	require.Equal(t, uint64(690_000_000), res.AmountOut)

	st := p.State()
	require.Equal(t, uint64(0), st.BaseReserve.Tokens)
	require.Equal(t, uint64(10_000_000_000), st.QuoteReserve.Tokens)
	require.True(t, st.Locked)

	_, err = p.ExecuteBuy(1_000_000, 0, nil)
	require.ErrorIs(t, err, shared.ErrPoolIsLocked)
}

func TestBuyAfterRaiseMetFails(t *testing.T) {
	_, p := testPool(t)

	_, err := p.ExecuteBuy(20_000_000_000, 0, nil)
	require.NoError(t, err)

	// even with the gate reopened the curve has nothing left to sell
	require.NoError(t, p.SetLock(testAdmin, false))
	_, err = p.ExecuteBuy(1_000_000, 0, nil)
	require.ErrorIs(t, err, shared.ErrInsufficientLiquidity)
}

func TestSellDrainingOutstandingSupply(t *testing.T) {
	_, p := testPool(t)

	bought, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)

	// asking to sell more than was ever bought caps at the outstanding
	// amount and drains the quote reserve
	res, err := p.ExecuteSell(bought.AmountOut*2, 0)
	require.NoError(t, err)
	require.Equal(t, bought.AmountOut, res.AmountIn)

	st := p.State()
	require.Equal(t, uint64(0), st.QuoteReserve.Tokens)
	require.Equal(t, uint64(690_000_000), st.BaseReserve.Tokens)
}

func TestSetLockGatesExecutionNotPreviews(t *testing.T) {
	_, p := testPool(t)

	_, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)

	require.ErrorIs(t, p.SetLock(testKey(0x99), true), shared.ErrUnauthorized)
	require.NoError(t, p.SetLock(testCreator, true))

	_, err = p.ExecuteBuy(1_000_000, 0, nil)
	require.ErrorIs(t, err, shared.ErrPoolIsLocked)
	_, err = p.ExecuteSell(1_000_000, 0)
	require.ErrorIs(t, err, shared.ErrPoolIsLocked)

	// previews stay available on a locked pool
	_, err = p.PreviewBuy(1_000_000)
	require.NoError(t, err)
	_, err = p.PreviewSell(1_000_000)
	require.NoError(t, err)

	// the admin can reopen a creator-locked pool
	require.NoError(t, p.SetLock(testAdmin, false))
	_, err = p.ExecuteBuy(1_000_000, 0, nil)
	require.NoError(t, err)
}

func TestClaimCreatorAllocation(t *testing.T) {
	_, p := testPool(t)
	vested := testNow + 7*shared.SecondsPerDay

	_, err := p.ClaimCreatorAllocation(testKey(0x99), vested)
	require.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = p.ClaimCreatorAllocation(testCreator, vested-1)
	require.ErrorIs(t, err, shared.ErrVestingNotElapsed)

	amount, err := p.ClaimCreatorAllocation(testCreator, vested)
	require.NoError(t, err)
	require.Equal(t, uint64(210_000_000), amount)
	require.Equal(t, uint64(0), p.State().ReservedLP)

	_, err = p.ClaimCreatorAllocation(testCreator, vested)
	require.ErrorIs(t, err, shared.ErrZeroAmount)
}

func TestVestingDoesNotGatePublicSwaps(t *testing.T) {
	_, p := testPool(t)

	// well before the vesting timestamp
	_, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)
}

type fakeLedger struct {
	available uint64
	credits   map[solanago.PublicKey]uint64
	err       error
}

func newFakeLedger(available uint64) *fakeLedger {
	return &fakeLedger{available: available, credits: map[solanago.PublicKey]uint64{}}
}

func (f *fakeLedger) Available() uint64 { return f.available }

func (f *fakeLedger) Credit(referrer solanago.PublicKey, points uint64) error {
	if f.err != nil {
		return f.err
	}
	f.credits[referrer] += points
	f.available -= points
	return nil
}

func testEpoch() shared.PointsEpoch {
	return shared.PointsEpoch{EpochNumber: 3, PointsPerQuoteNum: 1, PointsPerQuoteDenom: 2}
}

func TestBuyAccruesPointsToReferrer(t *testing.T) {
	ledger := newFakeLedger(1_000_000_000)
	_, p := testPool(t, WithPointsLedger(ledger), WithPointsEpoch(testEpoch()))

	referrer := testKey(0x77)
	res, err := p.ExecuteBuy(100_000_000, 0, &referrer)
	require.NoError(t, err)

	// points on the gross quote amount, fee included
	require.Equal(t, uint64(50_000_000), res.PointsCredited)
	require.Equal(t, uint64(3), res.EpochNumber)
	require.Equal(t, uint64(50_000_000), ledger.credits[referrer])
}

func TestBuyWithoutReferrerAccruesNothing(t *testing.T) {
	ledger := newFakeLedger(1_000_000_000)
	_, p := testPool(t, WithPointsLedger(ledger), WithPointsEpoch(testEpoch()))

	res, err := p.ExecuteBuy(100_000_000, 0, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.PointsCredited)
	require.Empty(t, ledger.credits)
}

func TestSellAccruesNoPoints(t *testing.T) {
	ledger := newFakeLedger(1_000_000_000)
	_, p := testPool(t, WithPointsLedger(ledger), WithPointsEpoch(testEpoch()))

	referrer := testKey(0x77)
	bought, err := p.ExecuteBuy(100_000_000, 0, &referrer)
	require.NoError(t, err)

	res, err := p.ExecuteSell(bought.AmountOut, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.PointsCredited)
}

func TestPointsClampToLedgerBalance(t *testing.T) {
	ledger := newFakeLedger(1_000)
	_, p := testPool(t, WithPointsLedger(ledger), WithPointsEpoch(testEpoch()))

	referrer := testKey(0x77)
	res, err := p.ExecuteBuy(100_000_000, 0, &referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), res.PointsCredited)
	require.Equal(t, uint64(0), ledger.available)
}

func TestLedgerFailureDoesNotFailTheTrade(t *testing.T) {
	ledger := newFakeLedger(1_000_000_000)
	ledger.err = errors.New("ledger offline")
	_, p := testPool(t, WithPointsLedger(ledger), WithPointsEpoch(testEpoch()))

	referrer := testKey(0x77)
	res, err := p.ExecuteBuy(100_000_000, 0, &referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(0), res.PointsCredited)
	require.Equal(t, uint64(99_000_000), p.State().QuoteReserve.Tokens)
}

func TestSetPointsEpoch(t *testing.T) {
	ledger := newFakeLedger(1_000_000_000)
	l, p := testPool(t, WithPointsLedger(ledger), WithPointsEpoch(testEpoch()))

	require.ErrorIs(t,
		l.SetPointsEpoch(testKey(0x99), shared.PointsEpoch{EpochNumber: 4, PointsPerQuoteNum: 1, PointsPerQuoteDenom: 1}),
		shared.ErrUnauthorized)
	require.ErrorIs(t,
		l.SetPointsEpoch(testAdmin, shared.PointsEpoch{EpochNumber: 4}),
		shared.ErrDivisionByZero)

	referrer := testKey(0x77)
	res, err := p.ExecuteBuy(100_000_000, 0, &referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(3), res.EpochNumber)

	require.NoError(t, l.SetPointsEpoch(testAdmin,
		shared.PointsEpoch{EpochNumber: 4, PointsPerQuoteNum: 1, PointsPerQuoteDenom: 4}))

	res, err = p.ExecuteBuy(100_000_000, 0, &referrer)
	require.NoError(t, err)
	require.Equal(t, uint64(4), res.EpochNumber)
	require.Equal(t, uint64(25_000_000), res.PointsCredited)
}

func TestSwapPoints(t *testing.T) {
	require.Equal(t, uint64(0), SwapPoints(100, shared.PointsEpoch{}))
	require.Equal(t, uint64(50), SwapPoints(100, testEpoch()))
	// floors
	require.Equal(t, uint64(49), SwapPoints(99, testEpoch()))
}
