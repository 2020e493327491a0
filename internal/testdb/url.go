package testdb

import (
	"os"
	"testing"

	"github.com/phrazzld/scry-hanzi/internal/redact"
)

// EnvDatabaseURL names the variable holding the Postgres integration database.
const EnvDatabaseURL = "HANZI_TEST_DATABASE_URL"

// DatabaseURL returns the integration database URL, skipping the test when
// none is configured.
func DatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv(EnvDatabaseURL)
	if url == "" {
		t.Skipf("%s not set, skipping database integration test", EnvDatabaseURL)
	}
	t.Logf("using test database %s", redact.URL(url))
	return url
}
