package launchpad

import (
	"context"
	"errors"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

type fakeVault struct {
	transfers map[solanago.PublicKey]uint64
	err       error
}

func newFakeVault() *fakeVault {
	return &fakeVault{transfers: map[solanago.PublicKey]uint64{}}
}

func (v *fakeVault) Transfer(_ context.Context, recipient solanago.PublicKey, amount uint64) error {
	if v.err != nil {
		return v.err
	}
	v.transfers[recipient] += amount
	return nil
}

func TestSendAirdropFunds(t *testing.T) {
	l := New(testAdmin)
	vault := newFakeVault()
	recipient := testKey(0x42)
	staking := &shared.StakingAllocation{PendingAirdrop: 100_000_000}

	amount, err := l.SendAirdropFunds(context.Background(), staking, vault, recipient)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000_000), amount)
	require.Equal(t, uint64(100_000_000), vault.transfers[recipient])
	require.Equal(t, uint64(0), staking.PendingAirdrop)

	_, err = l.SendAirdropFunds(context.Background(), staking, vault, recipient)
	require.ErrorIs(t, err, shared.ErrZeroAmount)
}

func TestSendAirdropFundsKeepsBalanceOnTransferFailure(t *testing.T) {
	l := New(testAdmin)
	vault := newFakeVault()
	vault.err = errors.New("vault unavailable")
	staking := &shared.StakingAllocation{PendingAirdrop: 100_000_000}

	_, err := l.SendAirdropFunds(context.Background(), staking, vault, testKey(0x42))
	require.Error(t, err)
	require.Equal(t, uint64(100_000_000), staking.PendingAirdrop)
}
