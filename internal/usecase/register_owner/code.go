package register_owner

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode случайный код из заглавных латинских букв и цифр
func RandomCode() (string, error) {
	buf := make([]byte, domain.SalonCodeLength)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
