package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/vantage/pkg/routes"
)

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/boards",
		Tag:    "Boards",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: reply("list")},
			{Method: "GET", Pattern: "/{id}", Handler: reply("find")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}",
				Tag:    "Comparisons",
				Routes: []routes.Route{{Method: "GET", Pattern: "/next", Handler: reply("next")}},
			},
			{
				Prefix: "/{id}/snapshots",
				Routes: []routes.Route{{Method: "POST", Pattern: "", Handler: reply("snapshot")}},
			},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, testGroup())

	tests := []struct {
		method, path, want string
	}{
		{"GET", "/boards", "list"},
		{"GET", "/boards/abc", "find"},
		{"GET", "/boards/abc/next", "next"},
		{"POST", "/boards/abc/snapshots", "snapshot"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Body.String() != tt.want {
			t.Errorf("%s %s = %q, want %q", tt.method, tt.path, rec.Body.String(), tt.want)
		}
	}
}

func TestWalkInheritsTag(t *testing.T) {
	tags := make(map[string]string)
	routes.Walk([]routes.Group{testGroup()}, func(path, tag string, r routes.Route) {
		tags[r.Method+" "+path] = tag
	})

	want := map[string]string{
		"GET /boards":                 "Boards",
		"GET /boards/{id}":            "Boards",
		"GET /boards/{id}/next":       "Comparisons",
		"POST /boards/{id}/snapshots": "Boards",
	}
	for k, v := range want {
		if tags[k] != v {
			t.Errorf("tag[%s] = %q, want %q", k, tags[k], v)
		}
	}
	if len(tags) != len(want) {
		t.Errorf("walked %d routes, want %d", len(tags), len(want))
	}
}
