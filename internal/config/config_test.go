package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/AgentX/types"
)

func TestSetDefaults_UnmarshalMatchesDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var got types.AppConfig
	require.NoError(t, v.Unmarshal(&got))

	want := Defaults()
	assert.Equal(t, want.Server, got.Server)
	assert.Equal(t, want.Pipeline, got.Pipeline)
	assert.Equal(t, want.Log, got.Log)
	assert.Equal(t, want.LLM.Provider, got.LLM.Provider)
	assert.Equal(t, want.LLM.Timeout, got.LLM.Timeout)
	assert.InDelta(t, want.LLM.Temperature, got.LLM.Temperature, 1e-9)
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/dev/.agentx.yaml"

	cfg := Defaults()
	cfg.LLM.Provider = "groq"
	cfg.Pipeline.Diagrams = false
	require.NoError(t, WriteConfigFile(fs, path, cfg, false))

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# AgentX Configuration"))
	assert.NotContains(t, string(raw), "apiKey")

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "-rw-r--r--", info.Mode().Perm().String())

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var got types.AppConfig
	require.NoError(t, v.Unmarshal(&got))
	assert.Equal(t, "groq", got.LLM.Provider)
	assert.False(t, got.Pipeline.Diagrams)
	assert.Equal(t, cfg.Pipeline.Timeout, got.Pipeline.Timeout)
	assert.Equal(t, cfg.Server.Addr, got.Server.Addr)
}

func TestWriteConfigFile_KeepsExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/etc/agentx/config.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte("llm:\n  provider: ollama\n"), 0o644))

	err := WriteConfigFile(fs, path, Defaults(), false)
	assert.True(t, errors.Is(err, ErrConfigExists), "err = %v", err)

	require.NoError(t, WriteConfigFile(fs, path, Defaults(), true))
	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "provider: gemini")
}

func TestWriteConfigFile_KeysArePrivate(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := Defaults()
	cfg.LLM.APIKeys = map[string]string{"gemini": "secret"}
	require.NoError(t, WriteConfigFile(fs, "/cfg.yaml", cfg, false))

	info, err := fs.Stat("/cfg.yaml")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestWriteConfigFile_EmptyPath(t *testing.T) {
	assert.Error(t, WriteConfigFile(afero.NewMemMapFs(), "", Defaults(), false))
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("AGENTX_DATA", "/data")

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/runs.db", "/home/tester/runs.db"},
		{"$AGENTX_DATA/runs.db", "/data/runs.db"},
		{"./mirror/", "mirror"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultStorePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "agentx", "runs.db"), DefaultStorePath())

	t.Setenv("XDG_DATA_HOME", "")
	orig := GetGlobalConfigDir
	t.Cleanup(func() { GetGlobalConfigDir = orig })
	GetGlobalConfigDir = func() (string, error) { return "/home/tester/.agentx", nil }
	assert.Equal(t, "/home/tester/.agentx/runs.db", DefaultStorePath())
}
