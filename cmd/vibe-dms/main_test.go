package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-dms/internal/compare"
)

const testdataDir = "../../internal/dataset/testdata"

// execute runs the root command with a fresh viper and an empty config file.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("{}\n"), 0644))

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "--data-dir", testdataDir, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#name\trows"))
	assert.True(t, strings.HasPrefix(lines[1], "escape_ab8307.csv\t10\tACDEFGHIKLMNPQRSTVWY\t"))
	assert.True(t, strings.HasPrefix(lines[2], "escape_ab8314.csv\t12\t"))
}

func TestCompare_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged.tsv")
	out, errOut, err := execute(t, "--data-dir", testdataDir,
		"compare", "escape_ab8307.csv", "escape_ab8314.csv", "--flags", "site_1", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Shared positions: 8")
	assert.Contains(t, errOut, "Pearson r:")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 9)

	header := strings.Split(lines[0], "\t")
	assert.Equal(t, "position", header[0])
	assert.Contains(t, header, compare.ColMedian1)
	assert.Contains(t, header, compare.ColMedian2)
	assert.Equal(t, compare.ColorColumn, header[len(header)-1])

	var green []string
	for _, line := range lines[1:] {
		cells := strings.Split(line, "\t")
		if cells[len(cells)-1] == "green" {
			green = append(green, cells[0])
		}
	}
	assert.Equal(t, []string{"333", "334"}, green)
}

func TestCompare_Figures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures.json")
	_, _, err := execute(t, "--data-dir", testdataDir,
		"compare", "escape_ab8307.csv", "escape_ab8314.csv", "-o", filepath.Join(t.TempDir(), "m.tsv"), "--figures", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Contains(t, doc, "scatter")
	assert.Contains(t, doc, "heatmap1")
	assert.Contains(t, doc, "heatmap2")
}

func TestCompare_Plot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	_, _, err := execute(t, "--data-dir", testdataDir,
		"compare", "escape_ab8307.csv", "escape_ab8314.csv", "-o", filepath.Join(t.TempDir(), "m.tsv"), "--plot", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "\x89PNG"))
}

func TestCompare_SameFile(t *testing.T) {
	_, _, err := execute(t, "--data-dir", testdataDir, "compare", "escape_ab8307.csv", "escape_ab8307.csv")
	assert.Error(t, err)
}

func TestCompare_UnknownDataset(t *testing.T) {
	_, _, err := execute(t, "--data-dir", testdataDir, "compare", "escape_ab8307.csv", "missing.csv")
	assert.Error(t, err)
}

func TestCompare_TooManyFlagsWarns(t *testing.T) {
	_, errOut, err := execute(t, "--data-dir", testdataDir,
		"compare", "escape_ab8307.csv", "escape_ab8314.csv",
		"--flags", "site_1,site_2,ab8307_site,ab8314_site,c_c",
		"-o", filepath.Join(t.TempDir(), "m.tsv"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "Warning: only the first 4 flags are used: site_1,site_2,ab8307_site,ab8314_site")
}

func TestInitConfig_RunsOncePerExecution(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	for i := 0; i < 2; i++ {
		viper.Reset()
		root := newRootCmd()
		var stdout, stderr bytes.Buffer
		root.SetOut(&stdout)
		root.SetErr(&stderr)
		root.SetArgs([]string{"--config", missing, "--data-dir", testdataDir, "list"})
		require.NoError(t, root.Execute())
		assert.Equal(t, 1, strings.Count(stderr.String(), "Warning: could not read config"), "run %d", i)
	}
	viper.Reset()
}

func TestConfigSetGet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	viper.SetConfigFile(cfg)

	var buf bytes.Buffer
	require.NoError(t, runConfigSet(&buf, keyServerPort, "9000"))
	assert.Contains(t, buf.String(), "Set server.port = 9000")

	buf.Reset()
	require.NoError(t, runConfigGet(&buf, keyServerPort))
	assert.Equal(t, "9000\n", buf.String())

	b, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(b), "port: 9000")
}

func TestConfigSet_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigFile(filepath.Join(t.TempDir(), "config.yaml"))

	var buf bytes.Buffer
	assert.ErrorContains(t, runConfigSet(&buf, "server.colour", "red"), "unknown key")
	assert.ErrorContains(t, runConfigSet(&buf, keyServerPort, "70000"), "not a TCP port")
	assert.ErrorContains(t, runConfigSet(&buf, keyLoadWorkers, "0"), "not a positive integer")
	assert.ErrorContains(t, runConfigSet(&buf, keyServerDebug, "maybe"), "not a boolean")
}

func TestConfigGet_Unset(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	assert.Error(t, runConfigGet(&bytes.Buffer{}, keyDataDir))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "on", "1"} {
		v, err := parseBool(s)
		require.NoError(t, err)
		assert.Equal(t, true, v, s)
	}
	for _, s := range []string{"false", "No", "off", "0"} {
		v, err := parseBool(s)
		require.NoError(t, err)
		assert.Equal(t, false, v, s)
	}
}

func TestPrintSummary_NoPairs(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, compare.Summarize(nil))
	assert.Contains(t, buf.String(), "Shared positions: 0")
	assert.Contains(t, buf.String(), "Pearson r: n/a (0 paired scores)")
}
