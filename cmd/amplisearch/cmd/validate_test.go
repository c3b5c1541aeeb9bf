package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommandStructure(t *testing.T) {
	assert.NotNil(t, validateCmd)
	assert.Equal(t, "validate", validateCmd.Use)
	assert.NotEmpty(t, validateCmd.Short)
	assert.NotEmpty(t, validateCmd.Long)
	assert.NotNil(t, validateCmd.RunE)
}

func TestValidateIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "validate" {
			found = true
			break
		}
	}
	assert.True(t, found, "validate command should be added to root command")
}

func TestValidateCommandExample(t *testing.T) {
	assert.Contains(t, validateCmd.Long, "Example:")
	assert.Contains(t, validateCmd.Long, "amplisearch validate")
	assert.Contains(t, validateCmd.Long, "Checks performed")
}

func TestRunValidate_Defaults(t *testing.T) {
	useTestFlags(t)

	out, err := capture(validateCmd, runValidate)
	require.NoError(t, err)
	assert.Contains(t, out, "not found, using defaults")
	assert.Contains(t, out, "Stopping Policy: adaptive")
	assert.Contains(t, out, "Rebuild Policy:  reuse")
	assert.Contains(t, out, "Seed:       42")
	assert.Contains(t, out, "Discovery: n = 3..9")
	assert.Contains(t, out, "Configuration is valid")
}

func TestRunValidate_Overrides(t *testing.T) {
	useTestFlags(t)
	stopping = "fixed"
	engine = "statevector"

	out, err := capture(validateCmd, runValidate)
	require.NoError(t, err)
	assert.Contains(t, out, "Stopping Policy: fixed")
	assert.Contains(t, out, "Engine:     statevector")
}

func TestRunValidate_Invalid(t *testing.T) {
	useTestFlags(t)
	stopping = "forever"

	_, err := capture(validateCmd, runValidate)
	assert.Error(t, err)
}
