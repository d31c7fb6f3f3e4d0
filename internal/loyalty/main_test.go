package loyalty

import (
	"os"
	"testing"

	"gymcore/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}
