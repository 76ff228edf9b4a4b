package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_Idempotent(t *testing.T) {
	Setup()
	first := Registered()
	Setup()

	assert.Equal(t, first, Registered())
	assert.Subset(t, first, defaultPlugins)
}

func TestRegister_Duplicate(t *testing.T) {
	Setup()

	err := Register(PluginScatter)
	assert.True(t, errors.Is(err, ErrAlreadyRegistered))

	assert.NoError(t, Register("crosshair"))
	assert.ErrorIs(t, Register("crosshair"), ErrAlreadyRegistered)
	assert.Error(t, Register(""))
}
