package launchpad

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

// ProgramID is the on-chain launchpad program address.
var ProgramID = solanago.MustPublicKeyFromBase58("GaKH1997A2Zai7T6s1NuWKzjVEvM4mFmsaBz3XeKD3Z9")

const (
	poolSeed   = "bound_pool"
	signerSeed = "signer"
	pointsSeed = "points"
)

// accountDiscriminator is the anchor account tag: sha256("account:<name>")[:8].
func accountDiscriminator(name string) [8]byte {
	h := sha256.Sum256([]byte("account:" + name))
	var d [8]byte
	copy(d[:], h[:8])
	return d
}

var (
	poolDiscriminator        = accountDiscriminator("BoundPool")
	pointsEpochDiscriminator = accountDiscriminator("PointsEpoch")
)

// EncodePoolAccount serializes the pool into its on-chain account layout:
// an 8-byte discriminator followed by the borsh-encoded state.
func EncodePoolAccount(st *shared.Pool) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(poolDiscriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePoolAccount parses an on-chain pool account.
func DecodePoolAccount(data []byte) (*shared.Pool, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], poolDiscriminator[:]) {
		return nil, fmt.Errorf("not a pool account")
	}
	st := new(shared.Pool)
	if err := bin.NewBorshDecoder(data[8:]).Decode(st); err != nil {
		return nil, err
	}
	return st, nil
}

// EncodePointsEpochAccount serializes the active epoch record.
func EncodePointsEpochAccount(e *shared.PointsEpoch) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(pointsEpochDiscriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePointsEpochAccount parses an on-chain points epoch account.
func DecodePointsEpochAccount(data []byte) (*shared.PointsEpoch, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], pointsEpochDiscriminator[:]) {
		return nil, fmt.Errorf("not a points epoch account")
	}
	e := new(shared.PointsEpoch)
	if err := bin.NewBorshDecoder(data[8:]).Decode(e); err != nil {
		return nil, err
	}
	return e, nil
}

// DerivePoolAddress derives the pool PDA for a base mint.
func DerivePoolAddress(baseMint solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress([][]byte{[]byte(poolSeed), baseMint.Bytes()}, ProgramID)
}

// DerivePoolSigner derives the PDA with authority over a pool's vaults.
func DerivePoolSigner(pool solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress([][]byte{[]byte(signerSeed), pool.Bytes()}, ProgramID)
}

// DerivePointsAuthority derives the PDA with authority over the points
// distribution account.
func DerivePointsAuthority() (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress([][]byte{[]byte(pointsSeed)}, ProgramID)
}

// VaultBalanceFromJSON extracts the raw token balance from a jsonParsed
// token-account payload as returned by RPC.
func VaultBalanceFromJSON(raw []byte) (uint64, error) {
	amount := gjson.GetBytes(raw, "parsed.info.tokenAmount.amount")
	if !amount.Exists() {
		return 0, fmt.Errorf("token amount missing from account payload")
	}
	return amount.Uint(), nil
}
