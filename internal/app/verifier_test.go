package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v, err := NewStaticVerifier("admin", "admin123")
	require.NoError(t, err)

	assert.True(t, v.Verify("admin", "admin123"))
	assert.False(t, v.Verify("admin", "wrong"))
	assert.False(t, v.Verify("root", "admin123"))
	assert.False(t, v.Verify("", ""))
}
