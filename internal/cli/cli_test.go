package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/gridcalc/internal/app"
	"github.com/specialistvlad/gridcalc/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	defaults := app.Config{
		HistoryCapacity: history.DefaultCapacity,
		DisplayMode:     "values",
		LogFormat:       "text",
		LogLevel:        "warn",
	}

	testCases := []struct {
		name     string
		args     []string
		expected func(app.Config) app.Config
	}{
		{
			name:     "defaults",
			args:     nil,
			expected: func(c app.Config) app.Config { return c },
		},
		{
			name: "positional script",
			args: []string{"commands.txt"},
			expected: func(c app.Config) app.Config {
				c.ScriptPath = "commands.txt"
				return c
			},
		},
		{
			name: "script flag wins over positional",
			args: []string{"-s", "a.txt", "b.txt"},
			expected: func(c app.Config) app.Config {
				c.ScriptPath = "a.txt"
				return c
			},
		},
		{
			name: "all options",
			args: []string{
				"-script=run.txt", "-load=book.yaml", "-history=5", "-display=FORMULAS",
				"-recovery-dir=/tmp/rec", "-healthcheck-port=9090", "-log-format=json", "-log-level=debug",
			},
			expected: func(c app.Config) app.Config {
				return app.Config{
					ScriptPath:      "run.txt",
					LoadPath:        "book.yaml",
					HistoryCapacity: 5,
					DisplayMode:     "formulas",
					RecoveryDir:     "/tmp/rec",
					LogFormat:       "json",
					LogLevel:        "debug",
					HealthcheckPort: 9090,
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, tc.expected(defaults), *cfg)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		message string
	}{
		{name: "unknown flag", args: []string{"-nope"}, message: "flag provided but not defined: -nope"},
		{name: "bad history", args: []string{"-history=0"}, message: "invalid HistoryCapacity 0"},
		{name: "bad display", args: []string{"-display=raw"}, message: "invalid DisplayMode"},
		{name: "bad log format", args: []string{"--log-format=yaml"}, message: "invalid LogFormat"},
		{name: "too many paths", args: []string{"a", "b"}, message: "expected at most one script path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.message)
		})
	}
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-recovery-dir")
}
