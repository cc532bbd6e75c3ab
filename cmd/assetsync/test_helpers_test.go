package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"assetsync/internal/assetindex"
)

// fakeAPI serves the GraphQL endpoint, asset binaries, and the storage
// upload target from one httptest server.
type fakeAPI struct {
	server *httptest.Server
	assets []assetindex.Asset

	mu        sync.Mutex
	updates   []string
	reuploads []string
	publishes []string
	uploads   []string
	listCalls int
}

func newFakeAPI(t *testing.T, assets ...assetindex.Asset) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", api.handleGraphQL)
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "binary:%s", strings.TrimPrefix(r.URL.Path, "/files/"))
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		api.mu.Lock()
		api.uploads = append(api.uploads, header.Filename)
		api.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)

	for _, a := range assets {
		if a.URL == "" {
			a.URL = api.server.URL + "/files/" + a.ID
		}
		api.assets = append(api.assets, a)
	}
	return api
}

func (a *fakeAPI) URL() string { return a.server.URL + "/graphql" }

func (a *fakeAPI) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, _ := req.Variables["id"].(string)

	a.mu.Lock()
	defer a.mu.Unlock()

	var data any
	switch {
	case strings.Contains(req.Query, "assets("):
		a.listCalls++
		first := int(req.Variables["first"].(float64))
		skip := int(req.Variables["skip"].(float64))
		page := []assetindex.Asset{}
		for i := skip; i < len(a.assets) && i < skip+first; i++ {
			page = append(page, a.assets[i])
		}
		data = map[string]any{"assets": page}
	case strings.Contains(req.Query, "publishAsset"):
		a.publishes = append(a.publishes, id)
		data = map[string]any{"publishAsset": map[string]any{"fileName": id}}
	case strings.Contains(req.Query, "reUpload: true"):
		a.reuploads = append(a.reuploads, id)
		data = map[string]any{"updateAsset": map[string]any{
			"fileName": a.fileName(id),
			"upload": map[string]any{
				"status":          "ASSET_UPLOAD_REQUESTED",
				"error":           nil,
				"requestPostData": map[string]any{"url": a.server.URL + "/upload", "key": "k/" + id},
			},
		}}
	case strings.Contains(req.Query, "updateAsset"):
		a.updates = append(a.updates, id)
		data = map[string]any{"updateAsset": map[string]any{"fileName": a.fileName(id)}}
	default:
		http.Error(w, "unknown operation", http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

// calls returns a snapshot of the recorded calls for kind.
func (a *fakeAPI) calls(kind string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var src []string
	switch kind {
	case "update":
		src = a.updates
	case "reupload":
		src = a.reuploads
	case "publish":
		src = a.publishes
	case "upload":
		src = a.uploads
	}
	return append([]string(nil), src...)
}

func (a *fakeAPI) pages() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listCalls
}

func (a *fakeAPI) fileName(id string) string {
	for _, asset := range a.assets {
		if asset.ID == id {
			return asset.FileName
		}
	}
	return ""
}

type cliTestEnv struct {
	root       string
	configPath string
	api        *fakeAPI
}

func setupCLITestEnv(t *testing.T, assets ...assetindex.Asset) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"GRAPHQL_API_URL", "AUTH_TOKEN", "DEFAULT_PULL_LIMIT", "PULL_TIME_SPAN", "PUSH_TIME_SPAN", "PUBLISH_TIME_SPAN"} {
		t.Setenv(key, "")
	}

	api := newFakeAPI(t, assets...)
	root := filepath.Join(base, "Assets")
	configPath := filepath.Join(base, "assetsync.toml")
	writeTestConfig(t, configPath, root, api.URL())

	return &cliTestEnv{root: root, configPath: configPath, api: api}
}

func writeTestConfig(t *testing.T, path, root, apiURL string) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
root = %q

[api]
url = %q
token = "test"

[pull]
limit = 100
delay_ms = 0

[push]
delay_ms = 0

[publish]
delay_ms = 0
`, root, apiURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
