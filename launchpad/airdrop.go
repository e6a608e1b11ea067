package launchpad

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// AirdropVault is the transport that moves already-allocated tokens to a
// recipient. The core decides the amount; the vault only moves it.
type AirdropVault interface {
	Transfer(ctx context.Context, recipient solanago.PublicKey, amount uint64) error
}

// SendAirdropFunds drains the staking allocation's pending airdrop balance
// to the recipient in one shot. A zero pending balance is a rejection, and
// the balance is only zeroed once the transfer has gone through.
func (l *Launchpad) SendAirdropFunds(ctx context.Context, staking *shared.StakingAllocation, vault AirdropVault, recipient solanago.PublicKey) (uint64, error) {
	if staking.PendingAirdrop == 0 {
		return 0, fmt.Errorf("%w: nothing pending for airdrop", shared.ErrZeroAmount)
	}
	amount := staking.PendingAirdrop
	if err := vault.Transfer(ctx, recipient, amount); err != nil {
		return 0, err
	}
	staking.PendingAirdrop = 0
	l.log.Info("airdrop funds sent",
		zap.Stringer("recipient", recipient),
		zap.Uint64("amount", amount),
	)
	return amount, nil
}
