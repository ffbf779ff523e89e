package broker

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const (
	testUser     = "test@vingd.com"
	testPassword = "password"
	// sha1("password")
	testSecret   = "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"
	testFrontend = "https://www.vingd.test"
)

type recorded struct {
	Method string
	Path   string
	Body   string
	User   string
	Pass   string
	Header http.Header
}

// fakeBroker is an in-process broker backend mounted under /broker/v1.
type fakeBroker struct {
	t      *testing.T
	router *mux.Router
	server *httptest.Server

	mu       sync.Mutex
	requests []recorded
}

func newFakeBroker(t *testing.T) *fakeBroker {
	t.Helper()
	f := &fakeBroker{t: t, router: mux.NewRouter()}
	f.server = httptest.NewServer(f.router)
	t.Cleanup(f.server.Close)
	return f
}

// handle answers method+path with status and the raw body.
func (f *fakeBroker) handle(method, path string, status int, body string) {
	f.router.HandleFunc("/broker/v1"+path, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		user, pass, _ := r.BasicAuth()

		f.mu.Lock()
		f.requests = append(f.requests, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			Body:   string(b),
			User:   user,
			Pass:   pass,
			Header: r.Header.Clone(),
		})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}).Methods(method)
}

func (f *fakeBroker) env() Environment {
	return Environment{Backend: f.server.URL + "/broker/v1/", Frontend: testFrontend + "/"}
}

func (f *fakeBroker) client(opts ...Option) *Client {
	return New(testUser, []byte(testPassword), f.env(), opts...)
}

func (f *fakeBroker) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func (f *fakeBroker) last() recorded {
	f.t.Helper()
	calls := f.calls()
	if len(calls) == 0 {
		f.t.Fatal("no request reached the fake broker")
	}
	return calls[len(calls)-1]
}
