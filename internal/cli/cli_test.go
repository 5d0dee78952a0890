package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

func TestParseTableID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			id, err := ParseTableID(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("yaml"))
	assert.Error(t, ValidateOutputFormat("xml"))

	assert.NoError(t, ValidateQueryName("daily"))
	assert.Error(t, ValidateQueryName(""))
	assert.Error(t, ValidateQueryName("a/b"))

	assert.NoError(t, ValidateTagArg("pii2"))
	assert.ErrorContains(t, ValidateTagArg("pii data"), "letters and digits")
}

func TestOutputResults(t *testing.T) {
	data := struct {
		Name string `json:"name" yaml:"name"`
	}{Name: "orders"}

	tests := []struct {
		format string
		want   string
	}{
		{"json", "{\n  \"name\": \"orders\"\n}\n"},
		{"yaml", "name: orders\n"},
		{"text", "{orders}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, OutputResults(&buf, tt.format, data))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	assert.Error(t, OutputResults(&bytes.Buffer{}, "csv", data))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "sales.o...", TruncateString("sales.orders_archive", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "ééé...", TruncateString("éééééééé", 6))
}

func TestPrintHelpersRespectFlags(t *testing.T) {
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })

	var buf bytes.Buffer
	PrintSuccess(&buf, "saved %s", "daily")
	assert.Equal(t, "✓ saved daily\n", buf.String())

	SetGlobalFlags(false, true, false)
	buf.Reset()
	PrintSuccess(&buf, "saved")
	PrintWarning(&buf, "careful")
	assert.Equal(t, "OK: saved\nWARNING: careful\n", buf.String())
	assert.Equal(t, "pii", ColorizeTag("pii", "#e74c3c"))

	SetGlobalFlags(true, false, false)
	buf.Reset()
	PrintInfo(&buf, "hidden")
	PrintSuccess(&buf, "hidden")
	assert.Empty(t, buf.String())
}

func TestConfirm(t *testing.T) {
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })

	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"y", false, true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tt.input), &out, "Continue?", tt.defaultYes)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Continue?")
	}

	SetGlobalFlags(false, false, true)
	got, err := Confirm(strings.NewReader(""), &bytes.Buffer{}, "Continue?", false)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestJoinTags(t *testing.T) {
	SetGlobalFlags(false, true, false)
	t.Cleanup(func() { SetGlobalFlags(false, false, false) })

	assert.Equal(t, "-", JoinTags(nil, nil))
	assert.Equal(t, "pii, finance", JoinTags([]string{"pii", "finance"}, func(string) string { return "#fff" }))
}

func TestCommandContext_SettingsFallback(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		wantWarn bool
	}{
		{"missing file", "", false},
		{"valid file", "search:\n  match_case: true\n", false},
		{"malformed file", "search: [unclosed\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			require.NoError(t, files.InitProjectStructure())
			if tt.settings != "" {
				path := filepath.Join(files.CatalogDir, files.SettingsFile)
				require.NoError(t, os.WriteFile(path, []byte(tt.settings), 0644))
			}

			var buf bytes.Buffer
			cc := NewCommandContext()
			logger, closeLog, err := cc.OpenLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
			require.NoError(t, err)
			require.NotNil(t, logger)
			t.Cleanup(func() { _ = closeLog() })

			require.NotNil(t, cc.Settings)
			if tt.wantWarn {
				assert.Error(t, cc.SettingsError())
				assert.Equal(t, models.DefaultSettings(), cc.Settings)
				assert.Contains(t, buf.String(), "using default settings")
			} else {
				assert.NoError(t, cc.SettingsError())
				assert.Empty(t, buf.String())
			}
		})
	}
}
