package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
)

func TestMigrationsPaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("no migrations embedded")
	}
	for base := range ups {
		if !downs[base] {
			t.Errorf("%s has no down migration", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("%s has no up migration", base)
		}
	}
}

func TestResolveDSN(t *testing.T) {
	dsn = ""
	t.Setenv(envDSN, "")
	if got := resolveDSN(); got != defaultDSN {
		t.Errorf("default = %q", got)
	}

	t.Setenv(envDSN, "postgres://env")
	if got := resolveDSN(); got != "postgres://env" {
		t.Errorf("env = %q", got)
	}

	dsn = "postgres://flag"
	t.Cleanup(func() { dsn = "" })
	if got := resolveDSN(); got != "postgres://flag" {
		t.Errorf("flag = %q", got)
	}
}

func TestIgnoreNoChange(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		in   error
		want error
	}{
		{nil, nil},
		{migrate.ErrNoChange, nil},
		{fmt.Errorf("wrapped: %w", migrate.ErrNoChange), nil},
		{boom, boom},
	}
	for _, tt := range tests {
		if got := ignoreNoChange(tt.in); got != tt.want {
			t.Errorf("ignoreNoChange(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
