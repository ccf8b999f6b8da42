package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/vantage/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func newSystem(t *testing.T) storage.System {
	t.Helper()
	cfg := &storage.Config{ConnectionString: azuriteConnString}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	sys, err := storage.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{ContainerName: "vantage", ConnectionString: "not-a-connection-string"}
	if _, err := storage.New(cfg, slog.Default()); err == nil {
		t.Fatal("expected error for invalid connection string")
	}
}

func TestKeyValidation(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()

	tests := []struct {
		key  string
		want error
	}{
		{"", storage.ErrEmptyKey},
		{"evidence/", storage.ErrEmptyKey},
		{"evidence/../secrets", storage.ErrInvalidKey},
		{"/evidence/x", storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := sys.Upload(ctx, tt.key, strings.NewReader("x"), "text/plain"); !errors.Is(err, tt.want) {
				t.Errorf("Upload err = %v, want %v", err, tt.want)
			}
			if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Download err = %v, want %v", err, tt.want)
			}
			if err := sys.Delete(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Delete err = %v, want %v", err, tt.want)
			}
			if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Exists err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := sys.List(ctx, "snapshots/../", 10); !errors.Is(err, storage.ErrInvalidKey) {
		t.Errorf("List err = %v, want ErrInvalidKey", err)
	}
}

func TestNotReadyBeforeStart(t *testing.T) {
	if newSystem(t).Ready() {
		t.Error("ready before Start")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{storage.ErrEmptyKey, http.StatusBadRequest},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{errors.New("network"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := storage.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &storage.Config{ConnectionString: "conn"}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.ContainerName != "vantage" || cfg.MaxListSize != 100 {
			t.Errorf("defaults = %+v", cfg)
		}
	})

	t.Run("service url instead of connection string", func(t *testing.T) {
		cfg := &storage.Config{ServiceURL: "https://acct.blob.core.windows.net/"}
		if err := cfg.Finalize(nil); err != nil {
			t.Errorf("finalize: %v", err)
		}
	})

	t.Run("requires a credential source", func(t *testing.T) {
		cfg := &storage.Config{}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected error with neither connection string nor service url")
		}
	})

	t.Run("rejects relative service url", func(t *testing.T) {
		cfg := &storage.Config{ServiceURL: "acct.blob"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("expected error for relative url")
		}
	})

	t.Run("env overrides and caps list size", func(t *testing.T) {
		t.Setenv("TEST_STORAGE_CONTAINER", "evidence")
		t.Setenv("TEST_STORAGE_MAX_LIST", "99999")

		cfg := &storage.Config{ConnectionString: "conn"}
		err := cfg.Finalize(&storage.Env{ContainerName: "TEST_STORAGE_CONTAINER", MaxListSize: "TEST_STORAGE_MAX_LIST"})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.ContainerName != "evidence" {
			t.Errorf("container = %q", cfg.ContainerName)
		}
		if cfg.MaxListSize != storage.MaxListCap {
			t.Errorf("max list = %d, want cap %d", cfg.MaxListSize, storage.MaxListCap)
		}
	})
}
