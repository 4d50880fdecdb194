package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseWorkload_Defaults(t *testing.T) {
	w, err := parseWorkload(newFlagSet(), nil, defaults())
	require.NoError(t, err)
	require.Equal(t, "lfu", w.Policy)
	require.EqualValues(t, 64<<20, w.Limit)
}

func TestParseWorkload_FileThenFlags(t *testing.T) {
	path := writeFile(t, `
limit: 4096
policy: fifo
value_size: 32
duration: 3s
reads: 50
`)
	w, err := parseWorkload(newFlagSet(), []string{"-config", path, "-policy", "mru", "-reads", "90"}, defaults())
	require.NoError(t, err)

	// from file
	require.EqualValues(t, 4096, w.Limit)
	require.Equal(t, 32, w.ValueSize)
	require.Equal(t, 3*time.Second, w.Duration)

	// explicit flags win over the file
	require.Equal(t, "mru", w.Policy)
	require.Equal(t, 90, w.Reads)

	// untouched defaults survive
	require.Equal(t, 1_000_000, w.Keys)
}

func TestParseWorkload_Invalid(t *testing.T) {
	cases := map[string][]string{
		"unknown policy": {"-policy", "lru"},
		"zero limit":     {"-limit", "0"},
		"reads > 100":    {"-reads", "101"},
		"flat zipf":      {"-zipf_s", "1"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseWorkload(newFlagSet(), args, defaults())
			require.Error(t, err)
			require.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestParseWorkload_BadFile(t *testing.T) {
	_, err := parseWorkload(newFlagSet(), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, defaults())
	require.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	path := writeFile(t, "limit: [not, a, number]\n")
	_, err = parseWorkload(newFlagSet(), []string{"-config", path}, defaults())
	require.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", "none", "random", "fifo", "lfu", "mru"} {
		p, err := policyByName(name, 1)
		require.NoError(t, err, name)
		if name != "" {
			require.Equal(t, name, p.Name())
		}
	}
}
