package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualFoldAny(t *testing.T) {
	assert.True(t, EqualFoldAny("DO", "do", "to"))
	assert.True(t, EqualFoldAny("To", "do", "to"))
	assert.False(t, EqualFoldAny("into", "do", "to"))
	assert.False(t, EqualFoldAny("to"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" x "))
}
