package telegram

import (
	"os"
	"testing"

	"github.com/m3rciful/filebot/core/logger"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}
