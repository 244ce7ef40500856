package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareProvider_CreatePayment(t *testing.T) {
	ctx := context.Background()
	p := NewSquareProvider("app", "token", "loc", "sandbox")

	t.Run("Success", func(t *testing.T) {
		result, err := p.CreatePayment(ctx, 15000, "cnon:card-nonce-ok", "a@b.c", "Alex")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "COMPLETED", result.Status)
		assert.Equal(t, int64(15000), result.AmountCents)
		assert.True(t, strings.HasPrefix(result.TransactionID, "sq-"))
		assert.NotEmpty(t, result.ReceiptNumber)
	})

	t.Run("UniqueTransactionIDs", func(t *testing.T) {
		first, err := p.CreatePayment(ctx, 100, "src", "a@b.c", "A")
		require.NoError(t, err)
		second, err := p.CreatePayment(ctx, 100, "src", "a@b.c", "A")
		require.NoError(t, err)
		assert.NotEqual(t, first.TransactionID, second.TransactionID)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		_, err := p.CreatePayment(ctx, 0, "src", "a@b.c", "A")
		assert.Error(t, err)
	})
}

func TestSquareProvider_CreatePaymentLink(t *testing.T) {
	ctx := context.Background()
	p := NewSquareProvider("app", "token", "loc", "")

	link, err := p.CreatePaymentLink(ctx, 11000, "Riley", 5)
	require.NoError(t, err)
	assert.Contains(t, link.URL, "amount=110.00")
	assert.Contains(t, link.LongURL, "member=5")

	_, err = p.CreatePaymentLink(ctx, -1, "Riley", 5)
	assert.Error(t, err)
}

func TestSquareProvider_RefundPayment(t *testing.T) {
	ctx := context.Background()
	p := NewSquareProvider("app", "token", "loc", "sandbox")

	result, err := p.RefundPayment(ctx, "sq-123", 5000, "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.TransactionID, "refund-"))

	_, err = p.RefundPayment(ctx, "", 5000, "dup")
	assert.Error(t, err)
}
