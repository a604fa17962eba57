// Package codes generates the random secrets handed out by the delivery flow.
package codes

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"freight/internal/pkg/errs"
)

const accessKeyBytes = 32

// Generator draws one-time passwords and survey access keys from crypto/rand.
type Generator struct {
	otpLength int
}

// NewGenerator creates a generator producing numeric codes of the given width.
func NewGenerator(otpLength int) (*Generator, error) {
	if otpLength < 1 || otpLength > 12 {
		return nil, errs.NewValueIsOutOfRangeError("otpLength", otpLength, 1, 12)
	}
	return &Generator{otpLength: otpLength}, nil
}

// NewOtpCode returns a fixed-width numeric one-time password.
// Leading zeros are kept so every code has the same width.
func (g *Generator) NewOtpCode() (string, error) {
	limit := big.NewInt(10)
	for i := 1; i < g.otpLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("draw otp code: %w", err)
	}

	return fmt.Sprintf("%0*d", g.otpLength, n), nil
}

// NewAccessKey returns a hex-encoded 256-bit survey access key.
func (g *Generator) NewAccessKey() (string, error) {
	raw := make([]byte, accessKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("draw access key: %w", err)
	}

	return hex.EncodeToString(raw), nil
}
