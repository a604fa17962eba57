package ports

// CodeGenerator produces the random secrets the delivery flow hands out.
// The default implementation draws from crypto/rand.
type CodeGenerator interface {
	// NewOtpCode returns a fixed-width numeric one-time password.
	NewOtpCode() (string, error)

	// NewAccessKey returns a long-lived opaque key gating the post-delivery
	// satisfaction survey.
	NewAccessKey() (string, error)
}
