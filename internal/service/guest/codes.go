package guest

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

const (
	codeLength = 8
	// No 0/O or 1/I so codes survive being read over the phone.
	codeCharset     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	maxCodeAttempts = 100
)

// generateCode produces a short invitation code not already taken according
// to the supplied check. With an 8-char code over a 32-char alphabet the
// retry cap is never hit in practice.
func generateCode(ctx context.Context, taken func(context.Context, string) (bool, error)) (string, error) {
	buf := make([]byte, codeLength)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		code := make([]byte, codeLength)
		for i, b := range buf {
			code[i] = codeCharset[int(b)%len(codeCharset)]
		}

		used, err := taken(ctx, string(code))
		if err != nil {
			return "", err
		}
		if !used {
			return string(code), nil
		}
	}

	return "", guest.ErrCodeGenerationExhausted
}
