package launchpadgo

import (
	"github.com/gamingterminal/launchpad-go/launchpad"
)

// NewLaunchpad creates the pool engine.
//
// Example:
//
// lp := NewLaunchpad(admin, launchpad.WithPointsLedger(ledger))
//
// pool, _ := lp.CreatePool(params, time.Now().Unix())
//
// pool.ExecuteBuy(amountIn, minBaseOut, &referrer)
var NewLaunchpad = launchpad.New

// NewClient creates the on-chain client.
//
// Example:
//
// client := NewClient(rpcClient, wsClient)
//
// client.Buy(ctx, ownerWallet, baseMint, amountIn, minBaseOut, &referrer)
//
// client.Sell(ctx, ownerWallet, baseMint, amountIn, minQuoteOut)
var NewClient = launchpad.NewClient
