package launchpad

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
	chain "github.com/gamingterminal/launchpad-go/solana"
)

// Client drives the on-chain launchpad program: it fetches and decodes pool
// accounts and wraps the swap instructions into signed, confirmed
// transactions.
type Client struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client
}

func NewClient(rpcClient *rpc.Client, wsClient *ws.Client) *Client {
	return &Client{rpcClient: rpcClient, wsClient: wsClient}
}

// FetchPool resolves the pool PDA for a base mint and decodes its account.
func (c *Client) FetchPool(ctx context.Context, baseMint solana.PublicKey) (solana.PublicKey, *shared.Pool, error) {
	poolAddress, _, err := DerivePoolAddress(baseMint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	out, err := chain.GetAccountInfo(ctx, c.rpcClient, poolAddress)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("fetch pool %s: %w", poolAddress, err)
	}
	st, err := DecodePoolAccount(out.Value.Data.GetBinary())
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	return poolAddress, st, nil
}

// FetchPointsEpoch decodes the active points epoch account.
func (c *Client) FetchPointsEpoch(ctx context.Context) (*shared.PointsEpoch, error) {
	address, _, err := DerivePointsAuthority()
	if err != nil {
		return nil, err
	}
	out, err := chain.GetAccountInfo(ctx, c.rpcClient, address)
	if err != nil {
		return nil, fmt.Errorf("fetch points epoch: %w", err)
	}
	return DecodePointsEpochAccount(out.Value.Data.GetBinary())
}

// ListPools scans the program for every pool account.
func (c *Client) ListPools(ctx context.Context) (map[solana.PublicKey]*shared.Pool, error) {
	outs, err := c.rpcClient.GetProgramAccountsWithOpts(ctx, ProgramID,
		chain.GenProgramAccountFilter(poolDiscriminator[:]))
	if err != nil {
		return nil, err
	}
	pools := make(map[solana.PublicKey]*shared.Pool, len(outs))
	for _, out := range outs {
		st, err := DecodePoolAccount(out.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("pool account %s: %w", out.Pubkey, err)
		}
		pools[out.Pubkey] = st
	}
	return pools, nil
}

// VaultBalances reads the raw balances of both reserve vaults.
func (c *Client) VaultBalances(ctx context.Context, st *shared.Pool) (base, quote uint64, err error) {
	outs, err := chain.GetMultipleAccountInfo(ctx, c.rpcClient,
		[]solana.PublicKey{st.BaseReserve.Vault, st.QuoteReserve.Vault})
	if err != nil {
		return 0, 0, err
	}
	for i, out := range outs.Value {
		if out == nil {
			return 0, 0, fmt.Errorf("reserve vault %d not found", i)
		}
		acc, err := chain.DecodeTokenAccount(out.Data.GetBinary())
		if err != nil {
			return 0, 0, err
		}
		if i == 0 {
			base = acc.Amount
		} else {
			quote = acc.Amount
		}
	}
	return base, quote, nil
}

// Buy submits a buy of quoteIn raw quote units against the pool of baseMint.
// The trade is priced locally first so obviously failing submissions never
// reach the chain.
func (c *Client) Buy(
	ctx context.Context,
	owner *solana.Wallet,
	baseMint solana.PublicKey,
	quoteIn uint64,
	minBaseOut uint64,
	referrer *solana.PublicKey,
) (solana.Signature, error) {
	if quoteIn == 0 {
		return solana.Signature{}, shared.ErrZeroAmount
	}

	poolAddress, st, err := c.FetchPool(ctx, baseMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if st.Locked {
		return solana.Signature{}, shared.ErrPoolIsLocked
	}
	if _, err = buySwapAmounts(st, quoteIn, minBaseOut); err != nil {
		return solana.Signature{}, err
	}

	var instructions []solana.Instruction
	userBase, err := chain.PrepareTokenATA(ctx, c.rpcClient, owner.PublicKey(), baseMint, owner.PublicKey(), &instructions)
	if err != nil {
		return solana.Signature{}, err
	}
	userQuote, err := chain.PrepareTokenATA(ctx, c.rpcClient, owner.PublicKey(), st.QuoteReserve.Mint, owner.PublicKey(), &instructions)
	if err != nil {
		return solana.Signature{}, err
	}

	buyIx, err := NewBuyInstruction(SwapAccounts{
		Pool:       poolAddress,
		BaseVault:  st.BaseReserve.Vault,
		QuoteVault: st.QuoteReserve.Vault,
		UserBase:   userBase,
		UserQuote:  userQuote,
		Owner:      owner.PublicKey(),
	}, quoteIn, minBaseOut, referrer)
	if err != nil {
		return solana.Signature{}, err
	}
	instructions = chain.MergeInstructions(append(instructions, buyIx))

	return chain.SendTransaction(ctx, c.rpcClient, c.wsClient, instructions, owner.PublicKey(),
		func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(owner.PublicKey()) {
				return &owner.PrivateKey
			}
			return nil
		},
	)
}

// Sell submits a sell of baseIn raw base tokens back to the pool.
func (c *Client) Sell(
	ctx context.Context,
	owner *solana.Wallet,
	baseMint solana.PublicKey,
	baseIn uint64,
	minQuoteOut uint64,
) (solana.Signature, error) {
	if baseIn == 0 {
		return solana.Signature{}, shared.ErrZeroAmount
	}

	poolAddress, st, err := c.FetchPool(ctx, baseMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if st.Locked {
		return solana.Signature{}, shared.ErrPoolIsLocked
	}
	if _, err = sellSwapAmounts(st, baseIn, minQuoteOut); err != nil {
		return solana.Signature{}, err
	}

	var instructions []solana.Instruction
	userBase, err := chain.PrepareTokenATA(ctx, c.rpcClient, owner.PublicKey(), baseMint, owner.PublicKey(), &instructions)
	if err != nil {
		return solana.Signature{}, err
	}
	userQuote, err := chain.PrepareTokenATA(ctx, c.rpcClient, owner.PublicKey(), st.QuoteReserve.Mint, owner.PublicKey(), &instructions)
	if err != nil {
		return solana.Signature{}, err
	}

	sellIx, err := NewSellInstruction(SwapAccounts{
		Pool:       poolAddress,
		BaseVault:  st.BaseReserve.Vault,
		QuoteVault: st.QuoteReserve.Vault,
		UserBase:   userBase,
		UserQuote:  userQuote,
		Owner:      owner.PublicKey(),
	}, baseIn, minQuoteOut)
	if err != nil {
		return solana.Signature{}, err
	}
	instructions = chain.MergeInstructions(append(instructions, sellIx))

	return chain.SendTransaction(ctx, c.rpcClient, c.wsClient, instructions, owner.PublicKey(),
		func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(owner.PublicKey()) {
				return &owner.PrivateKey
			}
			return nil
		},
	)
}

// SetLock submits the administrative lock toggle for the pool of baseMint.
func (c *Client) SetLock(
	ctx context.Context,
	authority *solana.Wallet,
	baseMint solana.PublicKey,
	locked bool,
) (solana.Signature, error) {
	poolAddress, _, err := DerivePoolAddress(baseMint)
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := NewSetLockInstruction(poolAddress, authority.PublicKey(), locked)
	if err != nil {
		return solana.Signature{}, err
	}
	return chain.SendTransaction(ctx, c.rpcClient, c.wsClient, []solana.Instruction{ix}, authority.PublicKey(),
		func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(authority.PublicKey()) {
				return &authority.PrivateKey
			}
			return nil
		},
	)
}
