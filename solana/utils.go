package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/rpc"
)

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	return recent.Value.Blockhash, nil
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentFinalized})
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentFinalized,
		Encoding:   solana.EncodingBase64,
	})
}

// GenProgramAccountFilter builds the getProgramAccounts options matching
// accounts tagged with the given 8-byte discriminator.
func GenProgramAccountFilter(discriminator []byte) *rpc.GetProgramAccountsOpts {
	return &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentFinalized,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  discriminator,
				},
			},
		},
	}
}

// PrepareTokenATA resolves the owner's associated token account for the
// mint, appending a create instruction when it does not exist yet.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	owner solana.PublicKey,
	tokenMint solana.PublicKey,
	payer solana.PublicKey,
	instructions *[]solana.Instruction,
) (solana.PublicKey, error) {
	tokenATA, _, err := solana.FindAssociatedTokenAddress(owner, tokenMint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	exists, err := GetAccountInfo(ctx, rpcClient, tokenATA)
	if err != nil && err != rpc.ErrNotFound {
		return solana.PublicKey{}, err
	}

	if exists == nil {
		ix := associatedtokenaccount.NewCreateInstruction(payer, owner, tokenMint).Build()
		*instructions = append(*instructions, ix)
	}
	return tokenATA, nil
}

// MergeInstructions drops duplicate associated-token-account creates that
// independent preparation steps may have appended for the same wallet and
// mint.
func MergeInstructions(oldInstructions []solana.Instruction) []solana.Instruction {
	var (
		seen            []*associatedtokenaccount.Create
		newInstructions []solana.Instruction
	)
	for _, v := range oldInstructions {
		inst, ok := v.(*associatedtokenaccount.Instruction)
		if !ok {
			newInstructions = append(newInstructions, v)
			continue
		}
		create, ok := inst.Impl.(associatedtokenaccount.Create)
		if !ok {
			newInstructions = append(newInstructions, v)
			continue
		}
		dup := false
		for _, prev := range seen {
			if create.Mint == prev.Mint && create.Payer == prev.Payer && create.Wallet == prev.Wallet {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, &create)
			newInstructions = append(newInstructions, v)
		}
	}
	return newInstructions
}
