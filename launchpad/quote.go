package launchpad

import (
	"fmt"

	"github.com/gamingterminal/launchpad-go/launchpad/math"
	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// The functions here are the pricing stage of a trade: pure reads of the
// pool state producing a staged SwapAmount. Nothing is applied until the
// engine commits in one terminal step.

func buySwapAmounts(st *shared.Pool, deltaQuote, minBaseOut uint64) (shared.SwapAmount, error) {
	feeIn, err := math.QuoteFee(st.Fees, deltaQuote)
	if err != nil {
		return shared.SwapAmount{}, err
	}

	if st.QuoteReserve.Tokens >= st.Curve.GammaS {
		return shared.SwapAmount{}, fmt.Errorf("%w: quote raise target already met", shared.ErrInsufficientLiquidity)
	}
	maxDeltaQuote := st.Curve.GammaS - st.QuoteReserve.Tokens

	netQuote := deltaQuote - feeIn
	isMax := netQuote >= maxDeltaQuote
	if isMax {
		netQuote = maxDeltaQuote
	}

	var deltaBase uint64
	if isMax {
		// the raise completes on this trade; the remaining tradable
		// reserve clears in full
		deltaBase = st.BaseReserve.Tokens
	} else {
		deltaBase, err = math.DeltaBaseOut(&st.Curve, st.QuoteReserve.Tokens, st.QuoteReserve.Tokens+netQuote)
		if err != nil {
			return shared.SwapAmount{}, err
		}
	}
	if deltaBase > st.BaseReserve.Tokens {
		return shared.SwapAmount{}, shared.ErrInsufficientLiquidity
	}

	feeOut, err := math.BaseFee(st.Fees, deltaBase)
	if err != nil {
		return shared.SwapAmount{}, err
	}
	netBase := deltaBase - feeOut

	if netBase < minBaseOut {
		return shared.SwapAmount{}, shared.ErrSlippageExceeded
	}

	return shared.SwapAmount{
		AmountIn:    netQuote,
		AmountOut:   netBase,
		AdminFeeIn:  feeIn,
		AdminFeeOut: feeOut,
	}, nil
}

func sellSwapAmounts(st *shared.Pool, deltaBase, minQuoteOut uint64) (shared.SwapAmount, error) {
	feeIn, err := math.BaseFee(st.Fees, deltaBase)
	if err != nil {
		return shared.SwapAmount{}, err
	}

	if st.BaseReserve.Tokens >= st.Curve.GammaM {
		return shared.SwapAmount{}, fmt.Errorf("%w: nothing has been bought from the curve", shared.ErrInsufficientLiquidity)
	}
	maxDeltaBase := st.Curve.GammaM - st.BaseReserve.Tokens

	netBase := deltaBase - feeIn
	isMax := netBase >= maxDeltaBase
	if isMax {
		netBase = maxDeltaBase
	}

	var deltaQuote uint64
	if isMax {
		// unwinding every outstanding token drains the quote reserve
		deltaQuote = st.QuoteReserve.Tokens
	} else {
		deltaQuote, err = math.DeltaQuoteOut(&st.Curve, st.QuoteReserve.Tokens, netBase)
		if err != nil {
			return shared.SwapAmount{}, err
		}
	}

	feeOut, err := math.QuoteFee(st.Fees, deltaQuote)
	if err != nil {
		return shared.SwapAmount{}, err
	}
	if deltaQuote > st.QuoteReserve.Tokens {
		return shared.SwapAmount{}, shared.ErrInsufficientLiquidity
	}
	netQuote := deltaQuote - feeOut

	if netQuote < minQuoteOut {
		return shared.SwapAmount{}, shared.ErrSlippageExceeded
	}

	return shared.SwapAmount{
		AmountIn:    netBase,
		AmountOut:   netQuote,
		AdminFeeIn:  feeIn,
		AdminFeeOut: feeOut,
	}, nil
}
