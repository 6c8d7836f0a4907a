package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenOTPCode generates a uniformly random 6-digit code in [100000, 999999]
// rendered as a fixed-width decimal string.
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
