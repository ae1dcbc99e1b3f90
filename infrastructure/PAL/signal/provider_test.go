package signal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatform_IncludesInterrupt(t *testing.T) {
	got := NewDefaultProvider().ShutdownSignals()
	assert.Contains(t, got, os.Interrupt)
	assert.Equal(t, got, shutdownSignals)
}

func TestPlatform_ReturnsCopy(t *testing.T) {
	first := NewDefaultProvider().ShutdownSignals()
	first[0] = os.Kill

	assert.Equal(t, os.Interrupt, NewDefaultProvider().ShutdownSignals()[0])
}
