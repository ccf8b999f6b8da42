package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/vantage/pkg/module"
)

func echoPath(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.URL.Path))
}

func TestNewValidatesPrefix(t *testing.T) {
	for _, prefix := range []string{"", "api", "/", "/api/v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, http.HandlerFunc(echoPath))
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", http.HandlerFunc(echoPath)))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("healthy"))
	})

	tests := []struct {
		path string
		want string
	}{
		{"/api/boards", "/boards"},
		{"/api/boards/", "/boards"},
		{"/api", "/"},
		{"/healthz", "healthy"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
		if rec.Body.String() != tt.want {
			t.Errorf("%s served %q, want %q", tt.path, rec.Body.String(), tt.want)
		}
	}
}

func TestModuleMiddleware(t *testing.T) {
	m := module.New("/api", http.HandlerFunc(echoPath))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "api")
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(m)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/x", nil))
	if rec.Header().Get("X-Module") != "api" {
		t.Error("module middleware not applied")
	}
}

func TestMountTwicePanics(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", http.HandlerFunc(echoPath)))

	defer func() {
		if recover() == nil {
			t.Error("second mount did not panic")
		}
	}()
	router.Mount(module.New("/api", http.HandlerFunc(echoPath)))
}
