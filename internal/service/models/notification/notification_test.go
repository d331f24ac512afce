package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"cancel", "ready", "complete", "edit"} {
		kind, err := ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, kind.String())
	}

	_, err := ParseKind("confirm")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseKind("")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseKind("refund")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestMessageTemplates(t *testing.T) {
	tests := []struct {
		kind     Kind
		preptime int
		want     string
	}{
		{
			kind: KindCancel,
			want: "Sadly we need to cancel your order. Please try again, or call us with your Order ID for further details.",
		},
		{
			kind: KindReady,
			want: "Your order is ready for pick up! See you soon :)",
		},
		{
			kind: KindComplete,
			want: "Thank you for choosing Aloette! We hope to serve you again soon.",
		},
		{
			kind:     KindEdit,
			preptime: 10,
			want:     "Your order needs an extra 10 minutes to prepare. Our apologies for the delay, thank you for your patience.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, err := Message(tt.kind, tt.preptime)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessageUnknownKind(t *testing.T) {
	_, err := Message(Kind("refund"), 0)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestConfirmMessage(t *testing.T) {
	got := ConfirmMessage(15)
	assert.Equal(t, "We are preparing your order! Please plan to pickup in 15 minutes.", got)
	assert.Contains(t, got, "15 minutes")
}
