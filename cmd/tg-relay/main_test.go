package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	opts := Opts{
		Config: "non-existent-config.yml",
	}

	err := run(ctx, opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "can't load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-config-*.yml")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	opts := Opts{
		Config: tmpFile.Name(),
	}

	err = run(ctx, opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "can't load config")
}

func TestRun_BadToken(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ok":false,"description":"Unauthorized","error_code":401}`)
	}))
	defer api.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: writeTestConfig(t, api.URL)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "can't authorize bot")
}

func TestRun_StartStop(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprint(w, `{"ok":true,"result":{"username":"relay_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		}
	}))
	defer api.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: writeTestConfig(t, api.URL)})
	require.NoError(t, err)
}

// writeTestConfig creates a config pointing at a fake bot API and a temp database
func writeTestConfig(t *testing.T, apiURL string) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`
telegram:
  token: test-token
  api_url: %s
  timeout: 1s
  poll_timeout: 1s
  super_admins:
    - "@root"
database:
  dsn: "file:%s/relay.db?cache=shared&mode=rwc"
retention:
  days: 3
`, apiURL, dir)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
