package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "ready", "cancelled", "complete"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}
}

func TestParseStatusInvalid(t *testing.T) {
	_, err := ParseStatus("in_progress")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusValue(t *testing.T) {
	v, err := StatusCancelled.Value()
	require.NoError(t, err)
	assert.Equal(t, "cancelled", v)
}
