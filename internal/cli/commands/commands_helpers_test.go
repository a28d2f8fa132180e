package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"GroceryWise/internal/config"
)

// fakeAPI: заглушка REST API: отвечает заранее заданным JSON и запоминает запросы.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recorded
	routes   map[string]fakeResponse
}

type recorded struct {
	Method, Path, Query, Auth string
	Body                      map[string]any
	Form                      map[string]string
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T, routes map[string]fakeResponse) (*fakeAPI, *config.Config) {
	t.Helper()
	f := &fakeAPI{routes: routes}
	ts := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(ts.Close)
	cfg := &config.Config{
		ServerURL: ts.URL,
		APIPrefix: "/api/v1",
		TokenFile: filepath.Join(t.TempDir(), "auth_token"),
	}
	return f, cfg
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		_ = r.ParseForm()
		rec.Form = map[string]string{}
		for k := range r.PostForm {
			rec.Form[k] = r.PostForm.Get(k)
		}
	} else if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	f.mu.Unlock()

	resp, ok := f.routes[r.Method+" "+r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeAPI) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return recorded{}
	}
	return f.requests[len(f.requests)-1]
}
