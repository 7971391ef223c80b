package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/steam-dilemma/config"
	"github.com/s0up4200/steam-dilemma/model"
	"github.com/s0up4200/steam-dilemma/steam"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"}, &bytes.Buffer{}, false)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := setupLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf, true)

	l.Debug().Msg("hidden")
	l.Info().Str("steam_id", "1").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "1", entry["steam_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupLogger_ConsoleWithoutTTYHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true}, &buf, false)

	l.Info().Msg("plain")
	assert.Contains(t, buf.String(), "plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNeedsUpdate(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
		wantErr bool
	}{
		{name: "newer release", current: "v1.2.0", latest: "1.3.0", want: true},
		{name: "same release", current: "1.3.0", latest: "v1.3.0", want: false},
		{name: "older release", current: "2.0.0", latest: "1.9.9", want: false},
		{name: "tolerant short version", current: "v1.2", latest: "1.2.1", want: true},
		{name: "dev build", current: "dev", latest: "1.0.0", wantErr: true},
		{name: "garbage release", current: "1.0.0", latest: "latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := needsUpdate(tt.current, tt.latest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// runCLI executes the root command with a config pointing at upstream
func runCLI(t *testing.T, upstreamURL string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("steam:\n  base_url: %s\n  timeout: 2s\nlogging:\n  level: error\n  format: json\n", upstreamURL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	t.Setenv(config.EnvAPIKey, "cli-key")

	filterExpr, jsonOutput, showDetails, logLevel = "", false, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != steam.OwnedGamesPath || r.URL.Query().Get("key") != "cli-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("steamid") != "76561197960287930" {
			fmt.Fprint(w, `{"response":{}}`)
			return
		}
		fmt.Fprint(w, `{"response":{"game_count":2,"games":[
			{"appid":570,"name":"Dota 2","playtime_forever":1234},
			{"appid":440,"name":"Team Fortress 2","playtime_forever":0}
		]}}`)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestLibraryCommand(t *testing.T) {
	upstream := newUpstream(t)

	out, err := runCLI(t, upstream.URL, "library", "76561197960287930")
	require.NoError(t, err)
	assert.Contains(t, out, "Games (2):")
	assert.Contains(t, out, "├── Dota 2 (570)")
	assert.Contains(t, out, "Played: 20h 34m")
	assert.Contains(t, out, "╰── Team Fortress 2 (440)")
}

func TestLibraryCommand_JSONWithFilter(t *testing.T) {
	upstream := newUpstream(t)

	out, err := runCLI(t, upstream.URL, "library", "[U:1:22202]", "--json", "--filter", "played()")
	require.NoError(t, err)

	var customer model.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &customer))
	assert.Equal(t, "[U:1:22202]", customer.SteamName)
	require.NotNil(t, customer.SteamID)
	assert.Equal(t, uint64(76561197960287930), *customer.SteamID)
	assert.Equal(t, []model.Game{{AppID: 570, Name: "Dota 2"}}, customer.Games)
}

func TestLibraryCommand_Errors(t *testing.T) {
	upstream := newUpstream(t)

	_, err := runCLI(t, upstream.URL, "library", "76561197960287931")
	require.Error(t, err)
	assert.ErrorIs(t, err, steam.ErrNoData)

	_, err = runCLI(t, upstream.URL, "library", "1", "--filter", "Name +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")

	_, err = runCLI(t, upstream.URL, "library")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, fmt.Sprintf("steam-dilemma %s (built %s)\n", version, buildTime), out.String())
}
