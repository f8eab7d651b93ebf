package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kudoslabs/kudos/pkg/module"
)

func echoPath() (*http.ServeMux, *string) {
	var seen string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	})
	return mux, &seen
}

func TestNewValidatesPrefix(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"valid", "/api", false},
		{"empty", "", true},
		{"unrooted", "api", true},
		{"multi-level", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				recovered := recover()
				if tt.wantErr && recovered == nil {
					t.Error("expected panic")
				}
				if !tt.wantErr && recovered != nil {
					t.Errorf("unexpected panic: %v", recovered)
				}
			}()
			module.New(tt.prefix, http.NewServeMux())
		})
	}
}

func TestServeStripsPrefix(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/feedback", nil))

	if *seen != "/feedback" {
		t.Errorf("inner path: got %s, want /feedback", *seen)
	}
}

func TestServePrefixRoot(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api", nil))

	if *seen != "/" {
		t.Errorf("inner path: got %s, want /", *seen)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mux, _ := echoPath()
	m := module.New("/api", mux)
	m.Use(mw("outer"))
	m.Use(mw("inner"))

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/x", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order: got %v", order)
	}
}

func TestRouterDispatch(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	router := module.NewRouter()
	router.Mount(m)

	var nativeHit bool
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		nativeHit = true
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/feedback", nil))
	if *seen != "/feedback" {
		t.Errorf("module dispatch: got %s", *seen)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if !nativeHit {
		t.Error("native handler not hit")
	}
}

func TestRouterTrailingSlash(t *testing.T) {
	mux, seen := echoPath()
	m := module.New("/api", mux)

	router := module.NewRouter()
	router.Mount(m)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/feedback/", nil))

	if *seen != "/feedback" {
		t.Errorf("normalized path: got %s, want /feedback", *seen)
	}
}
