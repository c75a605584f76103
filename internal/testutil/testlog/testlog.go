package testlog

import (
	"testing"

	"github.com/rs/zerolog"
)

// Start returns a logger wired through t.Log, so component output
// interleaves with failures and disappears for passing tests.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t))
}
