package launchpad

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"

	chain "github.com/gamingterminal/launchpad-go/solana"
)

// TokenVault implements AirdropVault on top of the SPL token program: each
// Transfer is a checked transfer from the treasury wallet, submitted and
// confirmed on chain. The mint's decimals are read from the chain on the
// first transfer and cached.
type TokenVault struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client
	treasury  *solana.Wallet
	mint      solana.PublicKey

	mu       sync.Mutex
	decimals *uint8
}

func NewTokenVault(rpcClient *rpc.Client, wsClient *ws.Client, treasury *solana.Wallet, mint solana.PublicKey) *TokenVault {
	return &TokenVault{
		rpcClient: rpcClient,
		wsClient:  wsClient,
		treasury:  treasury,
		mint:      mint,
	}
}

func (v *TokenVault) mintDecimals(ctx context.Context) (uint8, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.decimals != nil {
		return *v.decimals, nil
	}
	out, err := chain.GetAccountInfo(ctx, v.rpcClient, v.mint)
	if err != nil {
		return 0, fmt.Errorf("fetch mint %s: %w", v.mint, err)
	}
	mint, err := chain.DecodeMint(out.Value.Data.GetBinary())
	if err != nil {
		return 0, err
	}
	v.decimals = &mint.Decimals
	return mint.Decimals, nil
}

func (v *TokenVault) Transfer(ctx context.Context, recipient solana.PublicKey, amount uint64) error {
	decimals, err := v.mintDecimals(ctx)
	if err != nil {
		return err
	}
	instructions, err := chain.TransferInstruction(
		ctx,
		v.rpcClient,
		v.treasury.PublicKey(),
		v.treasury.PublicKey(),
		recipient,
		v.mint,
		decimals,
		amount,
	)
	if err != nil {
		return err
	}
	_, err = chain.SendTransaction(ctx, v.rpcClient, v.wsClient, instructions, v.treasury.PublicKey(),
		func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(v.treasury.PublicKey()) {
				return &v.treasury.PrivateKey
			}
			return nil
		},
	)
	return err
}
