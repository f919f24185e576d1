package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nexless/storeaudit/cmd/testutil"
	"github.com/nexless/storeaudit/internal/application"
	"github.com/nexless/storeaudit/internal/registry"
)

const cmdTestPagesYAML = `
- key: home
  name: Home
  path: /
  category: core
  risk: low
- key: dashboard
  name: Dashboard
  path: /dashboard
  category: core
  risk: medium
`

// cmdHealthyBody carries every marker the page checks look for, padded past
// the content-length threshold.
var cmdHealthyBody = `<html><head><script src="app.js"></script><link rel="stylesheet" href="app.css"></head>` +
	`<body><nav class="menu"><div class="sidebar"></div></nav><header>Store</header>` +
	`<a href="/dashboard">Dashboard</a><a href="/products">Products</a>` +
	`<form><button type="submit">Go</button></form>` +
	`<div class="widget">total items: 42</div>` +
	strings.Repeat("<p>inventory listing row</p>", 60) +
	`</body></html>`

func newStorefrontServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "invalid-route-test-") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, cmdHealthyBody)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// setupTestAppContext initializes the global AppContext with real services
// against a throwaway audit directory and the given storefront origin.
func setupTestAppContext(t *testing.T, baseURL string) (*testutil.TestEnv, func()) {
	t.Helper()

	original := globalAppContext

	env := testutil.NewTestEnv(t)
	if baseURL != "" {
		env.WithBaseURL(baseURL)
	}

	reg, err := registry.Parse([]byte(cmdTestPagesYAML))
	if err != nil {
		t.Fatalf("failed to parse test registry: %v", err)
	}

	logger := zap.NewNop().Sugar()
	services, err := application.NewContainer(application.Config{
		AuditDir: env.AuditDir,
		BaseURL:  env.BaseURL,
		Registry: reg,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("failed to initialize services: %v", err)
	}

	globalAppContext = &AppContext{
		Logger:   logger,
		AuditDir: env.AuditDir,
		BaseURL:  env.BaseURL,
		Config:   newCLIConfig(),
		Services: services,
	}

	return env, func() {
		globalAppContext = original
	}
}
