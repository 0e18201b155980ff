//go:build integration

package app

import (
	"os"
	"testing"

	"github.com/guttosm/flock-service/internal/testutil"
)

// TestMain runs the package's integration tests against one shared container.
func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithSharedMongo(m))
}

func getSharedContainerURI() string {
	return testutil.SharedURI()
}

func sanitizeDBNameForApp(testName string) string {
	return testutil.DatabaseName(testName)
}
