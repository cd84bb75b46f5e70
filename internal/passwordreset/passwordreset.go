package passwordreset

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const otpDigits = 6

// GenerateOTPCode produces a zero-padded 6-digit code from a
// cryptographically secure source.
func GenerateOTPCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OTPRequestResult reports where the OTP went.
type OTPRequestResult struct {
	UserID int64
}
