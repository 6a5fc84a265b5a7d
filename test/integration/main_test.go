//go:build integration

package integration_test

import (
	"os"
	"testing"

	"github.com/hestjs/create-hest-app/internal/cli"
)

// runCLIEnv makes the test binary behave as the CLI, so tests can drive a
// real process with signals and pipes.
const runCLIEnv = "HEST_INTEGRATION_RUN_CLI"

func TestMain(m *testing.M) {
	if os.Getenv(runCLIEnv) == "1" {
		os.Args = []string{"create-hest-app"}
		if err := cli.Execute("dev", "none", "unknown"); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}
