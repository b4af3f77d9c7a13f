package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/credentials"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

func init() {
	logger.SetOutput(io.Discard)
}

type reply struct {
	status int
	body   string
}

// fakeAPI answers "METHOD /path" keys with canned replies and counts hits.
type fakeAPI struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]func(r *http.Request, body []byte) reply
	hits   map[string]int
	bodies map[string][]string
	srv    *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		t:      t,
		routes: map[string]func(*http.Request, []byte) reply{},
		hits:   map[string]int{},
		bodies: map[string][]string{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.hits[key]++
	f.bodies[key] = append(f.bodies[key], string(body))
	h, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"not found"}`)
		return
	}
	rep := h(r, body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

func (f *fakeAPI) on(method, path string, status int, body string) {
	f.handle(method, path, func(*http.Request, []byte) reply { return reply{status, body} })
}

func (f *fakeAPI) handle(method, path string, h func(r *http.Request, body []byte) reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeAPI) lastBody(method, path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.bodies[method+" "+path]
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1]
}

func (f *fakeAPI) totalWithMethod(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for key, hits := range f.hits {
		if len(key) > len(method) && key[:len(method)+1] == method+" " {
			n += hits
		}
	}
	return n
}

func (f *fakeAPI) client(t *testing.T, loggedIn bool) *apiclient.Client {
	t.Helper()
	creds := credentials.NewMemoryStore()
	if loggedIn {
		require.NoError(t, creds.Save(types.TokenPair{AccessToken: "access", RefreshToken: "refresh"}))
	}
	c, err := apiclient.New(f.srv.URL+"/api/v1", creds)
	require.NoError(t, err)
	return c
}

const okEmpty = `{"success":true,"message":"ok","data":{}}`
