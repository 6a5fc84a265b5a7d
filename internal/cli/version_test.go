package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()
	resetCommand(t)
	versionShort, versionJSON = false, false
	t.Cleanup(func() { versionShort, versionJSON = false, false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"version"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	v, c, d := buildVersion, buildCommit, buildDate
	buildVersion, buildCommit, buildDate = "0.1.3", "abc1234", "2026-10-01"
	t.Cleanup(func() { buildVersion, buildCommit, buildDate = v, c, d })

	t.Run("short", func(t *testing.T) {
		assert.Equal(t, "0.1.3\n", runVersion(t, "--short"))
	})

	t.Run("human", func(t *testing.T) {
		out := runVersion(t)
		assert.Contains(t, out, "create-hest-app 0.1.3")
		assert.Contains(t, out, "commit:    abc1234")
		assert.Contains(t, out, "templates: base, cqrs")
	})

	t.Run("json", func(t *testing.T) {
		var info versionInfo
		require.NoError(t, json.Unmarshal([]byte(runVersion(t, "--json")), &info))
		assert.Equal(t, "0.1.3", info.Version)
		assert.Equal(t, []string{"base", "cqrs"}, info.Templates)
		assert.NotEmpty(t, info.GoVersion)
	})
}
