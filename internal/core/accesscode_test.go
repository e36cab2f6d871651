package core

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessCodePayload(t *testing.T) {
	assert.Equal(t, "GymID:abc-123", AccessCodePayload("abc-123"))
}

func TestAccessCodeDataURL(t *testing.T) {
	dataURL, err := AccessCodeDataURL("abc-123")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	require.NoError(t, err)
	// PNG signature.
	require.GreaterOrEqual(t, len(raw), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, raw[:8])
}

func TestAccessCodeDataURLDeterministic(t *testing.T) {
	first, err := AccessCodeDataURL("gym-1")
	require.NoError(t, err)
	second, err := AccessCodeDataURL("gym-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAccessCodeDataURLEmptyGymID(t *testing.T) {
	_, err := AccessCodeDataURL("")
	assert.Error(t, err)
}
