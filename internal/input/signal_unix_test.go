//go:build unix

package input

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalSourceReportsQuit(t *testing.T) {
	s := NewSignalSource(syscall.SIGUSR1)
	defer s.Close()
	assert.Empty(t, s.Poll())

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))
	assert.Eventually(t, func() bool {
		events := s.Poll()
		return len(events) == 1 && events[0].Kind == EventQuit
	}, time.Second, 5*time.Millisecond)
}
