package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winpeek/winpeek/internal/window"
)

// resetFlags resets all persistent flags to their default values between tests
func resetFlags() {
	_ = RootCmd.PersistentFlags().Set("verbose", "false")
	_ = RootCmd.PersistentFlags().Set("logs", "false")
	_ = RootCmd.PersistentFlags().Set("config", "")
	_ = RootCmd.PersistentFlags().Set("all-desktops", "false")
}

func TestNewOptionsFromFlags(t *testing.T) {
	resetFlags()
	defer resetFlags()

	require.NoError(t, RootCmd.PersistentFlags().Set("verbose", "true"))
	require.NoError(t, RootCmd.PersistentFlags().Set("config", "custom.yml"))
	require.NoError(t, RootCmd.PersistentFlags().Set("all-desktops", "true"))

	opts := NewOptionsFromFlags(RootCmd)

	assert.True(t, opts.Verbose)
	assert.False(t, opts.ShowLogs)
	assert.Equal(t, "custom.yml", opts.ConfigPath)
	assert.True(t, opts.AllDesktops)
}

func TestGetFlagsMissing(t *testing.T) {
	t.Parallel()

	// A command without the flag defined should yield zero values rather
	// than an error.
	cmd := &cobra.Command{}

	assert.False(t, getBoolFlag(cmd, "verbose"))
	assert.Equal(t, "", getStringFlag(cmd, "config"))
}

func TestParseHandle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		want    window.Handle
		wantErr bool
	}{
		{
			name: "decimal",
			arg:  "66130",
			want: 66130,
		},
		{
			name: "hex",
			arg:  "0x1a2b0",
			want: 0x1a2b0,
		},
		{
			name:    "zero",
			arg:     "0",
			wantErr: true,
		},
		{
			name:    "not a number",
			arg:     "editor",
			wantErr: true,
		},
		{
			name:    "negative",
			arg:     "-42",
			wantErr: true,
		},
		{
			name:    "empty",
			arg:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHandle(tt.arg)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorContains(t, err, "invalid window identifier")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateWatchArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name: "no kinds",
			args: nil,
		},
		{
			name: "single kind",
			args: []string{"focused"},
		},
		{
			name: "several kinds",
			args: []string{"created", "closed", "minimized", "restored"},
		},
		{
			name:    "unknown kind",
			args:    []string{"resized"},
			wantErr: true,
		},
		{
			name:    "one bad among good",
			args:    []string{"focused", "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchArgs(&cobra.Command{}, tt.args)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorContains(t, err, "unknown event kind")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKindList(t *testing.T) {
	t.Parallel()

	list := kindList()

	for _, kind := range []string{"focused", "created", "closed", "minimized", "restored"} {
		assert.Contains(t, list, kind)
	}
}

func TestHandleLogsFlag_NotRequested(t *testing.T) {
	t.Parallel()

	exitCalled := false
	err := handleLogsFlag(&Options{ShowLogs: false}, func(int) { exitCalled = true })

	assert.NoError(t, err)
	assert.False(t, exitCalled)
}

func TestHandleLogsFlag_PrintsLogFile(t *testing.T) {
	// Point the log directory at a temp location and seed a log file there.
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", tmpDir)

	logDir := filepath.Join(tmpDir, "winpeek")
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	testContent := "time=2026-01-02 level=INFO msg=\"listed windows\" count=3"
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "winpeek.log"), []byte(testContent), 0o644))

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	exitCalled := false
	var exitCode int
	mockExit := func(code int) {
		exitCalled = true
		exitCode = code
	}

	err := handleLogsFlag(&Options{ShowLogs: true}, mockExit)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	assert.NoError(t, err)
	assert.True(t, exitCalled, "Should call exit function for --logs flag")
	assert.Equal(t, 0, exitCode, "Should exit with code 0 for --logs")
	assert.Contains(t, buf.String(), testContent)
}

func TestHandleLogsFlag_NoLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", tmpDir)

	// Capture stderr for the missing-file notice
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	exitCode := -1
	err := handleLogsFlag(&Options{ShowLogs: true}, func(code int) {
		if exitCode == -1 {
			exitCode = code
		}
	})

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	assert.NoError(t, err)
	assert.Equal(t, 1, exitCode, "Should exit with code 1 when log file is missing")
}
