// Package u128 bridges decimal strings and big integers into the 128-bit
// words the pool account layout stores curve coefficients in.
package u128

import (
	"errors"
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return errors.New("value cannot be negative")
	} else if i.BitLen() > 128 {
		return errors.New("value overflows Uint128")
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	return nil
}

// FromString parses a non-negative decimal string.
func FromString(num string) (binary.Uint128, error) {
	u128 := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(u128)); err != nil {
		return binary.Uint128{}, err
	}
	return *u128, nil
}

// MustFromString parses a decimal string known to be valid at compile time.
func MustFromString(num string) binary.Uint128 {
	v, err := FromString(num)
	if err != nil {
		panic(err)
	}
	return v
}
