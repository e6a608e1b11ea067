package launchpad

import (
	"bytes"
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// methodDiscriminator is the anchor instruction tag: sha256("global:<name>")[:8].
func methodDiscriminator(name string) [8]byte {
	h := sha256.Sum256([]byte("global:" + name))
	var d [8]byte
	copy(d[:], h[:8])
	return d
}

func encodeInstructionData(method string, args ...interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	d := methodDiscriminator(method)
	buf.Write(d[:])
	enc := bin.NewBorshEncoder(buf)
	for _, a := range args {
		if err := enc.Encode(a); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// SwapAccounts are the accounts every swap instruction touches.
type SwapAccounts struct {
	Pool       solanago.PublicKey
	BaseVault  solanago.PublicKey
	QuoteVault solanago.PublicKey
	UserBase   solanago.PublicKey
	UserQuote  solanago.PublicKey
	Owner      solanago.PublicKey
}

// NewSellInstruction builds the sell-base-for-quote instruction.
func NewSellInstruction(acc SwapAccounts, baseIn, minQuoteOut uint64) (solanago.Instruction, error) {
	data, err := encodeInstructionData("swap_x", baseIn, minQuoteOut)
	if err != nil {
		return nil, err
	}
	poolSigner, _, err := DerivePoolSigner(acc.Pool)
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.Meta(acc.Pool).WRITE(),
		solanago.Meta(acc.BaseVault).WRITE(),
		solanago.Meta(acc.QuoteVault).WRITE(),
		solanago.Meta(acc.UserBase).WRITE(),
		solanago.Meta(acc.UserQuote).WRITE(),
		solanago.Meta(acc.Owner).SIGNER(),
		solanago.Meta(poolSigner),
		solanago.Meta(solanago.TokenProgramID),
	}
	return solanago.NewInstruction(ProgramID, metas, data), nil
}

// NewBuyInstruction builds the buy-base-with-quote instruction. A non-nil
// referrer appends the referrer points account, which switches the points
// accrual on.
func NewBuyInstruction(acc SwapAccounts, quoteIn, minBaseOut uint64, referrer *solanago.PublicKey) (solanago.Instruction, error) {
	data, err := encodeInstructionData("swap_y", quoteIn, minBaseOut)
	if err != nil {
		return nil, err
	}
	poolSigner, _, err := DerivePoolSigner(acc.Pool)
	if err != nil {
		return nil, err
	}
	pointsAuthority, _, err := DerivePointsAuthority()
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.Meta(acc.Pool).WRITE(),
		solanago.Meta(acc.BaseVault).WRITE(),
		solanago.Meta(acc.QuoteVault).WRITE(),
		solanago.Meta(acc.UserQuote).WRITE(),
		solanago.Meta(acc.UserBase).WRITE(),
		solanago.Meta(acc.Owner).WRITE().SIGNER(),
		solanago.Meta(pointsAuthority),
		solanago.Meta(poolSigner),
		solanago.Meta(solanago.TokenProgramID),
	}
	if referrer != nil {
		metas = append(metas, solanago.Meta(*referrer).WRITE())
	}
	return solanago.NewInstruction(ProgramID, metas, data), nil
}

// NewSetLockInstruction builds the administrative lock toggle.
func NewSetLockInstruction(pool, authority solanago.PublicKey, locked bool) (solanago.Instruction, error) {
	data, err := encodeInstructionData("set_lock", locked)
	if err != nil {
		return nil, err
	}
	metas := solanago.AccountMetaSlice{
		solanago.Meta(pool).WRITE(),
		solanago.Meta(authority).SIGNER(),
	}
	return solanago.NewInstruction(ProgramID, metas, data), nil
}
