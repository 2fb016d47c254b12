package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	first, err := New()
	require.NoError(t, err)
	assert.Len(t, first, 43) // 32 bytes, base64url without padding

	second, err := New()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
