package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		Info.SetOutput(os.Stdout)
		Warn.SetOutput(os.Stdout)
		Error.SetOutput(os.Stderr)
	}()

	Info.Println("ready")
	Warn.Println("slow")
	Error.Println("broken")

	out := buf.String()
	assert.Contains(t, out, "[INFO] ")
	assert.Contains(t, out, "[WARN] ")
	assert.Contains(t, out, "[ERROR] ")
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "broken")
}
