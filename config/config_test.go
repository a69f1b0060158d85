/*
Copyright 2021 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAccount, EnvOutput, EnvWidth, EnvHeight, EnvPadding, EnvRunning, EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "ledgerplot.yaml", "account: Assets:Checking\nwidth: 800\nrunning: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Assets:Checking", cfg.Account)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.True(t, cfg.Running)
	assert.Equal(t, "balance.png", cfg.Output)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "ledgerplot.yaml", "account: Assets:Checking\npadding: 3\n")
	t.Setenv(EnvAccount, "Assets:Savings")
	t.Setenv(EnvHeight, "600")
	t.Setenv(EnvPadding, "2.5")
	t.Setenv(EnvRunning, "true")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Assets:Savings", cfg.Account)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 2.5, cfg.Padding)
	assert.True(t, cfg.Running)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvOutput)
	env := writeFile(t, "test.env", "LEDGERPLOT_OUTPUT=chart.svg\n")
	t.Cleanup(func() { os.Unsetenv(EnvOutput) })

	cfg, err := Load("", env)
	require.NoError(t, err)
	assert.Equal(t, "chart.svg", cfg.Output)

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yaml string
	}{
		{"bad width", map[string]string{EnvWidth: "wide"}, ""},
		{"bad padding", map[string]string{EnvPadding: "lots"}, ""},
		{"bad running", map[string]string{EnvRunning: "maybe"}, ""},
		{"zero height", nil, "height: -1\n"},
		{"negative padding", nil, "padding: -2\n"},
		{"bad yaml", nil, "width: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, "c.yaml", tt.yaml)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
