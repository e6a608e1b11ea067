package math

import (
	"math/big"

	bin "github.com/gagliardetto/binary"

	"github.com/gamingterminal/launchpad-go/launchpad/shared"
)

func U128ToBig(v bin.Uint128) *big.Int {
	return v.BigInt()
}

func U128FromBig(v *big.Int) (bin.Uint128, error) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return bin.Uint128{}, shared.ErrArithmeticOverflow
	}
	u := bin.Uint128{
		Lo: v.Uint64(),
		Hi: new(big.Int).Rsh(v, 64).Uint64(),
	}
	return u, nil
}
