package compiler

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchRoots(t *testing.T) {
	t.Parallel()

	first := filepath.Join("opt", "agents")
	second := filepath.Join("srv", "agents")
	env := map[string]string{
		EnvSearchPath: first + string(filepath.ListSeparator) + string(filepath.ListSeparator) + second,
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	roots := searchRoots(lookup)
	require.Greater(t, len(roots), 2)
	require.Equal(t, []string{first, second}, roots[:2])
	for _, root := range roots[2:] {
		require.True(t, strings.HasSuffix(root, "pheres"), root)
	}

	require.Equal(t, roots[2:], searchRoots(noEnv))
}

func TestNewDefaultFS(t *testing.T) {
	t.Parallel()

	f, err := NewDefaultFS(noEnv)
	require.NoError(t, err)
	require.NotNil(t, f)
}
