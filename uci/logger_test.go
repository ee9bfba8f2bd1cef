package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigureLoggingAcceptsAnInvalidLevelWithoutPanicking(t *testing.T) {
	assert.NotPanics(t, func() {
		ConfigureLogging("not-a-real-level")
		ConfigureLogging("WARNING")
	})
}
