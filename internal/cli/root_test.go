package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const citiesCSV = "name,lat,lon\nParis,48.85,2.35\nLima,-12.05,-77.04\n"

// execute runs rootCmd with a fresh flag state and an isolated config file.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	cfgFile := filepath.Join(t.TempDir(), "config.toml")
	out, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func resetFlags() {
	cfgPath, logLevel, logConsole, logFile = "", "", false, ""
	inspectJSON = false
	convertOut, convertIndent = "", false
	exportOut, exportTitle, exportFields = "", "", ""
	exportColorField, exportPalette, exportBasemap = "", "", ""
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "geomap [file]", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "Viewer controls")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-console", "log-file"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_RejectsTwoArgs(t *testing.T) {
	_, _, err := execute(t, "a.csv", "b.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestSetup_LogLevelFlagOverridesConfig(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)

	_, stderr, err := execute(t, "--log-level", "debug", "inspect", path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Contains(t, stderr, `"component":"inspect"`)
	assert.Contains(t, stderr, "normalized")
}

func TestSetup_LogFile(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	logPath := filepath.Join(t.TempDir(), "geomap.log")

	_, stderr, err := execute(t, "--log-level", "debug", "--log-file", logPath, "inspect", path)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	require.NoError(t, closeLog())

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "configured")
}

func TestExecute_ClosesLogFile(t *testing.T) {
	path := writeFile(t, "cities.csv", citiesCSV)
	logPath := filepath.Join(t.TempDir(), "geomap.log")
	resetFlags()
	t.Cleanup(resetFlags)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "c.toml"), "--log-file", logPath, "inspect", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute())
	assert.Nil(t, logSink)
	assert.FileExists(t, logPath)
}

func TestLogOutput_ViewerDiscardsWithoutFile(t *testing.T) {
	cfg.Log.File = ""
	out, err := logOutput(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, io.Discard, out)

	buf := new(bytes.Buffer)
	versionCmd.SetErr(buf)
	defer versionCmd.SetErr(nil)
	out, err = logOutput(versionCmd)
	require.NoError(t, err)
	assert.Same(t, buf, out)
}

func TestSetup_MalformedConfig(t *testing.T) {
	bad := writeFile(t, "config.toml", "[log\nlevel=")
	path := writeFile(t, "cities.csv", citiesCSV)

	resetFlags()
	t.Cleanup(resetFlags)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--config", bad, "inspect", path})
	defer rootCmd.SetArgs(nil)

	assert.Error(t, rootCmd.Execute())
}
