//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkret/promptsmith/cmd"
	"github.com/mkret/promptsmith/internal/config"
)

// setupTestEnvironment creates a temporary config directory, writes a basic
// config.yaml with suggestions disabled (the workflow tests run without any
// network), points PROMPTSMITH_CONFIG_DIR at it and returns the directory
// plus a cleanup function.
func setupTestEnvironment(t *testing.T) (string, func()) {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "promptsmith-integration-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	configContent := fmt.Sprintf(`
default_tier: "guided"
output_dir: "%s"
suggestions:
  provider: "none"
`, tempDir)

	configPath := filepath.Join(tempDir, config.DefaultConfigFileName)
	err = os.WriteFile(configPath, []byte(configContent), 0600)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to write temp config file: %v", err)
	}

	originalConfigDir := os.Getenv(config.ConfigDirEnvVar)
	os.Setenv(config.ConfigDirEnvVar, tempDir)

	cleanup := func() {
		os.RemoveAll(tempDir)
		if originalConfigDir != "" {
			os.Setenv(config.ConfigDirEnvVar, originalConfigDir)
		} else {
			os.Unsetenv(config.ConfigDirEnvVar)
		}
	}

	return tempDir, cleanup
}

// executePsmithCommand runs the promptsmith root command in-process with the
// given stdin content and arguments, capturing stdout and stderr. The
// PROMPTSMITH_CONFIG_DIR environment variable must already point at the test
// directory (see setupTestEnvironment).
func executePsmithCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	originalLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	var outBuf, errBuf bytes.Buffer

	rootCmd := cmd.NewRootCmd()
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	execErr := rootCmd.ExecuteContext(context.Background())

	return outBuf.String(), errBuf.String(), execErr
}
