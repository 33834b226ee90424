package guest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
)

func neverTaken(ctx context.Context, code string) (bool, error) { return false, nil }

func TestGenerateCode_ShapeAndCharset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		code, err := generateCode(ctx, neverTaken)
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeCharset, r), "unexpected rune %q in %q", r, code)
		}
	}
}

func TestGenerateCode_AvoidsTakenCodes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first, err := generateCode(ctx, neverTaken)
	require.NoError(t, err)

	// Treat the first code as taken; the generator must come back with a
	// different one.
	second, err := generateCode(ctx, func(ctx context.Context, code string) (bool, error) {
		return code == first, nil
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateCode_Exhaustion(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := generateCode(context.Background(), func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, guest.ErrCodeGenerationExhausted)
	assert.Equal(t, maxCodeAttempts, calls)
}
