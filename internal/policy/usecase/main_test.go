package usecase

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies no goroutines leak across the use case tests. Compilation
// is expected to leave nothing running once it returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
