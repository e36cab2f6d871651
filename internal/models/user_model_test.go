package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasFCMToken(t *testing.T) {
	assert.False(t, (&User{}).HasFCMToken())
	assert.False(t, (&User{FCMToken: "   "}).HasFCMToken())
	assert.True(t, (&User{FCMToken: "token-1"}).HasFCMToken())
}
