package solana

import (
	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// TokenAccount is the decoded balance-bearing view of an SPL token account.
type TokenAccount struct {
	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64
	Frozen bool
}

// spl token account wire layout, option tags included
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

const tokenAccountStateFrozen = 2

// DecodeTokenAccount parses a raw SPL token account.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	raw := new(tokenAccountLayout)
	if err := binary.NewBinDecoder(data).Decode(raw); err != nil {
		return nil, err
	}
	return &TokenAccount{
		Mint:   raw.Mint,
		Owner:  raw.Owner,
		Amount: raw.Amount,
		Frozen: raw.State == tokenAccountStateFrozen,
	}, nil
}

// DecodeMint parses a raw SPL mint account.
func DecodeMint(data []byte) (*token.Mint, error) {
	mint := new(token.Mint)
	if err := mint.Decode(data); err != nil {
		return nil, err
	}
	return mint, nil
}
