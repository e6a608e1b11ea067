package launchpad

import (
	"fmt"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gamingterminal/launchpad-go/launchpad/math"
	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// Launchpad owns the cross-pool configuration: the admin identity, the
// active points epoch, and the points ledger the accrual settles against.
type Launchpad struct {
	mu     sync.RWMutex
	admin  solanago.PublicKey
	epoch  shared.PointsEpoch
	points PointsLedger
	log    *zap.Logger

	airdropCap uint64
	minVesting int64
	maxVesting int64
}

type Option func(*Launchpad)

func WithLogger(log *zap.Logger) Option {
	return func(l *Launchpad) { l.log = log }
}

func WithPointsLedger(pl PointsLedger) Option {
	return func(l *Launchpad) { l.points = pl }
}

func WithPointsEpoch(e shared.PointsEpoch) Option {
	return func(l *Launchpad) { l.epoch = e }
}

func WithVestingBounds(min, max int64) Option {
	return func(l *Launchpad) { l.minVesting, l.maxVesting = min, max }
}

func WithAirdropCap(cap uint64) Option {
	return func(l *Launchpad) { l.airdropCap = cap }
}

func New(admin solanago.PublicKey, opts ...Option) *Launchpad {
	l := &Launchpad{
		admin:      admin,
		log:        zap.NewNop(),
		airdropCap: shared.GlobalAirdropCap,
		minVesting: shared.MinVestingPeriod,
		maxVesting: shared.MaxVestingPeriod,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// SetPointsEpoch rotates the reward-rate epoch. Admin only. Trades already
// committed keep the epoch number they captured.
func (l *Launchpad) SetPointsEpoch(caller solanago.PublicKey, e shared.PointsEpoch) error {
	if !caller.Equals(l.admin) {
		return shared.ErrUnauthorized
	}
	if e.PointsPerQuoteDenom == 0 {
		return shared.ErrDivisionByZero
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch = e
	l.log.Info("points epoch rotated",
		zap.Uint64("epoch", e.EpochNumber),
		zap.Uint64("points_per_quote_num", e.PointsPerQuoteNum),
		zap.Uint64("points_per_quote_denom", e.PointsPerQuoteDenom),
	)
	return nil
}

func (l *Launchpad) CurrentEpoch() shared.PointsEpoch {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.epoch
}

// Pool wraps one pool's persistent state. All mutating operations serialize
// behind the mutex; each stages its deltas locally and applies them in one
// terminal step, so a failed operation leaves the state untouched.
type Pool struct {
	mu sync.Mutex
	st shared.Pool
	lp *Launchpad
}

// CreateParams bootstraps a pool. Allocations are raw base-token amounts;
// TradingAllocation+LPAllocation must equal TotalSupply, and the airdrop
// carve-out is drawn from the LP bucket.
type CreateParams struct {
	TotalSupply       uint64
	TradingAllocation uint64
	LPAllocation      uint64
	AirdropAllocation uint64
	VestingPeriod     int64
	Fees              shared.Fees
	TargetQuoteRaise  decimal.Decimal
	QuoteDecimals     uint64
	PriceFactorNum    uint64
	PriceFactorDenom  uint64

	BaseMint   solanago.PublicKey
	BaseVault  solanago.PublicKey
	QuoteMint  solanago.PublicKey
	QuoteVault solanago.PublicKey
	FeeVault   solanago.PublicKey
	Creator    solanago.PublicKey
}

// CreatePool validates the launch parameters, derives the curve, and mints
// the fixed supply into the reserves. The supply never changes afterwards.
func (l *Launchpad) CreatePool(p CreateParams, now int64) (*Pool, error) {
	if p.TradingAllocation > p.TotalSupply || p.TotalSupply-p.TradingAllocation != p.LPAllocation {
		return nil, fmt.Errorf("%w: allocations must sum to the total supply", shared.ErrInvalidAllocation)
	}
	if p.Fees.FeeQuoteNum >= shared.FeePrecision || p.Fees.FeeBaseNum >= shared.FeePrecision {
		return nil, fmt.Errorf("%w: fee fraction must be below the fee precision", shared.ErrInvalidFees)
	}
	if p.AirdropAllocation > l.airdropCap {
		return nil, fmt.Errorf("%w: airdrop allocation above the global cap", shared.ErrInvalidAllocation)
	}
	if p.AirdropAllocation > p.LPAllocation {
		return nil, fmt.Errorf("%w: airdrop allocation exceeds the LP bucket it draws from", shared.ErrInvalidAllocation)
	}
	if p.VestingPeriod < l.minVesting || p.VestingPeriod > l.maxVesting {
		return nil, fmt.Errorf("%w: vesting period %ds outside [%d, %d]",
			shared.ErrInvalidVestingPeriod, p.VestingPeriod, l.minVesting, l.maxVesting)
	}

	curve, err := math.BuildCurveConfig(math.BuildCurveParams{
		TradingAllocation: p.TradingAllocation,
		LPAllocation:      p.LPAllocation,
		TargetQuoteRaise:  p.TargetQuoteRaise,
		QuoteDecimals:     p.QuoteDecimals,
		PriceFactorNum:    p.PriceFactorNum,
		PriceFactorDenom:  p.PriceFactorDenom,
	})
	if err != nil {
		return nil, err
	}

	st := shared.Pool{
		BaseReserve: shared.Reserve{
			Tokens: p.TradingAllocation,
			Mint:   p.BaseMint,
			Vault:  p.BaseVault,
		},
		QuoteReserve: shared.Reserve{
			Tokens: 0,
			Mint:   p.QuoteMint,
			Vault:  p.QuoteVault,
		},
		FeeVault:         p.FeeVault,
		Creator:          p.Creator,
		Fees:             p.Fees,
		Curve:            curve,
		ReservedLP:       p.LPAllocation - p.AirdropAllocation,
		AllocatedAirdrop: p.AirdropAllocation,
		VestingUntil:     now + p.VestingPeriod,
	}

	l.log.Info("pool created",
		zap.Stringer("base_mint", p.BaseMint),
		zap.Uint64("total_supply", p.TotalSupply),
		zap.Uint64("trading_allocation", p.TradingAllocation),
		zap.Uint64("lp_allocation", p.LPAllocation),
		zap.Uint64("airdrop_allocation", p.AirdropAllocation),
		zap.Int64("vesting_until", st.VestingUntil),
	)

	return &Pool{st: st, lp: l}, nil
}

// State returns a snapshot copy of the persistent pool state.
func (p *Pool) State() shared.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// PreviewBuy quotes a buy without mutating anything. Previews ignore the
// lock gate: quoting a locked pool is allowed.
func (p *Pool) PreviewBuy(quoteAmount uint64) (shared.SwapPreview, error) {
	if quoteAmount == 0 {
		return shared.SwapPreview{}, shared.ErrZeroAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	amt, err := buySwapAmounts(&p.st, quoteAmount, 0)
	if err != nil {
		return shared.SwapPreview{}, err
	}
	return shared.SwapPreview{AmountOut: amt.AmountOut, Fee: amt.AdminFeeIn}, nil
}

// PreviewSell quotes a sell without mutating anything.
func (p *Pool) PreviewSell(baseAmount uint64) (shared.SwapPreview, error) {
	if baseAmount == 0 {
		return shared.SwapPreview{}, shared.ErrZeroAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	amt, err := sellSwapAmounts(&p.st, baseAmount, 0)
	if err != nil {
		return shared.SwapPreview{}, err
	}
	return shared.SwapPreview{AmountOut: amt.AmountOut, Fee: amt.AdminFeeOut}, nil
}

// ExecuteBuy trades quoteAmount of the quote asset for base tokens. The
// gate check, pricing, fee, slippage check, reserve mutation, and points
// accrual are one atomic unit; any failure before the mutation leaves the
// pool unchanged. Points accrue to the referrer only, and never fail the
// already-priced trade.
func (p *Pool) ExecuteBuy(quoteAmount, minBaseOut uint64, referrer *solanago.PublicKey) (shared.SwapResult, error) {
	if quoteAmount == 0 {
		return shared.SwapResult{}, shared.ErrZeroAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.st.Locked {
		return shared.SwapResult{}, shared.ErrPoolIsLocked
	}

	amt, err := buySwapAmounts(&p.st, quoteAmount, minBaseOut)
	if err != nil {
		return shared.SwapResult{}, err
	}

	epoch := p.lp.CurrentEpoch()

	// terminal step: apply every staged delta at once
	p.st.AdminFeeQuote += amt.AdminFeeIn
	p.st.AdminFeeBase += amt.AdminFeeOut
	p.st.QuoteReserve.Tokens += amt.AmountIn
	p.st.BaseReserve.Tokens -= amt.AmountOut + amt.AdminFeeOut
	if p.st.BaseReserve.Tokens == 0 {
		p.st.Locked = true
	}

	credited := p.lp.accruePoints(amt.AmountIn+amt.AdminFeeIn, epoch, referrer)

	p.lp.log.Info("buy committed",
		zap.Stringer("base_mint", p.st.BaseReserve.Mint),
		zap.Uint64("quote_in", amt.AmountIn),
		zap.Uint64("base_out", amt.AmountOut),
		zap.Uint64("fee", amt.AdminFeeIn),
		zap.Uint64("points_credited", credited),
		zap.Uint64("epoch", epoch.EpochNumber),
		zap.Bool("locked", p.st.Locked),
	)

	return shared.SwapResult{
		AmountIn:       amt.AmountIn,
		AmountOut:      amt.AmountOut,
		Fee:            amt.AdminFeeIn,
		PointsCredited: credited,
		EpochNumber:    epoch.EpochNumber,
	}, nil
}

// ExecuteSell trades baseAmount of base tokens for the quote asset. Sells
// accrue no points.
func (p *Pool) ExecuteSell(baseAmount, minQuoteOut uint64) (shared.SwapResult, error) {
	if baseAmount == 0 {
		return shared.SwapResult{}, shared.ErrZeroAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.st.Locked {
		return shared.SwapResult{}, shared.ErrPoolIsLocked
	}

	amt, err := sellSwapAmounts(&p.st, baseAmount, minQuoteOut)
	if err != nil {
		return shared.SwapResult{}, err
	}

	epoch := p.lp.CurrentEpoch()

	p.st.AdminFeeBase += amt.AdminFeeIn
	p.st.AdminFeeQuote += amt.AdminFeeOut
	p.st.BaseReserve.Tokens += amt.AmountIn
	p.st.QuoteReserve.Tokens -= amt.AmountOut + amt.AdminFeeOut

	p.lp.log.Info("sell committed",
		zap.Stringer("base_mint", p.st.BaseReserve.Mint),
		zap.Uint64("base_in", amt.AmountIn),
		zap.Uint64("quote_out", amt.AmountOut),
		zap.Uint64("fee", amt.AdminFeeOut),
	)

	return shared.SwapResult{
		AmountIn:    amt.AmountIn,
		AmountOut:   amt.AmountOut,
		Fee:         amt.AdminFeeOut,
		EpochNumber: epoch.EpochNumber,
	}, nil
}

// SetLock flips the administrative trading gate. Only the pool creator or
// the launchpad admin may call it.
func (p *Pool) SetLock(caller solanago.PublicKey, locked bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !caller.Equals(p.st.Creator) && !caller.Equals(p.lp.admin) {
		return shared.ErrUnauthorized
	}
	p.st.Locked = locked
	p.lp.log.Info("pool lock set",
		zap.Stringer("base_mint", p.st.BaseReserve.Mint),
		zap.Bool("locked", locked),
	)
	return nil
}

// ClaimCreatorAllocation releases the vested LP/creator bucket. Gated on
// the vesting timestamp; public swaps are independent of it.
func (p *Pool) ClaimCreatorAllocation(caller solanago.PublicKey, now int64) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !caller.Equals(p.st.Creator) {
		return 0, shared.ErrUnauthorized
	}
	if now < p.st.VestingUntil {
		return 0, fmt.Errorf("%w: %ds remaining", shared.ErrVestingNotElapsed, p.st.VestingUntil-now)
	}
	if p.st.ReservedLP == 0 {
		return 0, shared.ErrZeroAmount
	}
	amount := p.st.ReservedLP
	p.st.ReservedLP = 0
	p.lp.log.Info("creator allocation claimed",
		zap.Stringer("base_mint", p.st.BaseReserve.Mint),
		zap.Uint64("amount", amount),
	)
	return amount, nil
}
