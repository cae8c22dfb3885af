package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	noColor := color.NoColor
	color.NoColor = true
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		color.NoColor = noColor
		SetOutput(color.Output)
	})
	return buf
}

func TestLevels(t *testing.T) {
	buf := captureOutput(t)

	Info("post %s", "p1")
	Warn("slow %d", 3)
	Error("failed")

	out := buf.String()
	assert.Contains(t, out, "[INFO]  post p1\n")
	assert.Contains(t, out, "[WARN]  slow 3\n")
	assert.Contains(t, out, "[Error] failed\n")
}

func TestWithContext_IncludesRequestID(t *testing.T) {
	buf := captureOutput(t)

	ctx := WithRequestID(context.Background(), "req-9")
	InfoWithContext(ctx, "incremented %s", "p1")
	ErrorWithContext(context.Background(), "no id")

	out := buf.String()
	assert.Contains(t, out, "[INFO] [req_id=req-9] incremented p1")
	assert.Contains(t, out, "[ERROR] no id")
}

func TestRequestIDFrom(t *testing.T) {
	assert.Equal(t, "", RequestIDFrom(nil))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
	assert.Equal(t, "abc", RequestIDFrom(WithRequestID(context.Background(), "abc")))
}

func TestUseFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(color.Output) })

	closer := UseFile(FileOptions{})
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "blog.log")
	closer = UseFile(FileOptions{Filename: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInfoStruct(t *testing.T) {
	buf := captureOutput(t)

	InfoStruct(struct {
		PostID string
		Views  int64
	}{PostID: "p1", Views: 3})

	out := buf.String()
	assert.Contains(t, out, "[DUMP] ")
	assert.Contains(t, out, `PostID: (string) (len=2) "p1"`)
	assert.Contains(t, out, "Views: (int64) 3")
}
