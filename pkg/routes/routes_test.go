package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kudoslabs/kudos/pkg/routes"
)

func TestRegister(t *testing.T) {
	var hits []string
	record := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, name)
		}
	}

	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/feedback",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: record("list")},
			{Method: "POST", Pattern: "", Handler: record("submit")},
		},
		Children: []routes.Group{
			{
				Prefix: "/export",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/csv", Handler: record("export")},
				},
			},
		},
	})

	requests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/feedback", "list"},
		{"POST", "/feedback", "submit"},
		{"GET", "/feedback/export/csv", "export"},
	}

	for _, req := range requests {
		hits = nil
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(req.method, req.path, nil))

		if len(hits) != 1 || hits[0] != req.want {
			t.Errorf("%s %s: got %v, want [%s]", req.method, req.path, hits, req.want)
		}
	}
}

func TestRegisterMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/feedback",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: func(w http.ResponseWriter, r *http.Request) {}},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/feedback", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", rec.Code)
	}
}
