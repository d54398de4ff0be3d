package testutil

import (
	"testing"

	"expensetrack/internal/logger"
)

func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	// creates a test logger that doesn't output anything.
	return logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: "discard",
	})
}
