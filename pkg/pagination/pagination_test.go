package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/vantage/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		search   string
	}{
		{"defaults", "", 1, 20, ""},
		{"explicit", "page=3&page_size=10&search=login", 3, 10, "login"},
		{"clamps size", "page_size=500", 1, 100, ""},
		{"negative page", "page=-2", 1, 20, ""},
		{"garbage", "page=x&page_size=y", 1, 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, cfg)

			if req.Page != tt.page || req.PageSize != tt.pageSize {
				t.Errorf("page/size = %d/%d, want %d/%d", req.Page, req.PageSize, tt.page, tt.pageSize)
			}
			got := ""
			if req.Search != nil {
				got = *req.Search
			}
			if got != tt.search {
				t.Errorf("search = %q, want %q", got, tt.search)
			}
		})
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	want := pagination.SortFields{{Field: "Title"}, {Field: "CreatedAt", Descending: true}}

	for _, body := range []string{
		`{"sort": "Title,-CreatedAt"}`,
		`{"sort": [{"field": "Title"}, {"field": "CreatedAt", "descending": true}]}`,
	} {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("unmarshal %s: %v", body, err)
		}
		if diff := cmp.Diff(want, req.Sort); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", body, diff)
		}
	}

	var req pagination.PageRequest
	if err := json.Unmarshal([]byte(`{"sort": 12}`), &req); err == nil {
		t.Error("expected error for numeric sort")
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		total, size, wantPages int
	}{
		{0, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{99, 10, 10},
	}

	for _, tt := range tests {
		res := pagination.NewPageResult[int](nil, tt.total, 1, tt.size)
		if res.TotalPages != tt.wantPages {
			t.Errorf("total=%d size=%d: pages = %d, want %d", tt.total, tt.size, res.TotalPages, tt.wantPages)
		}
		if res.Data == nil {
			t.Error("nil data")
		}
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_PAGE_MAX", "40")

	c := pagination.Config{}
	if err := c.Finalize(&pagination.ConfigEnv{MaxPageSize: "TEST_PAGE_MAX"}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if c.DefaultPageSize != 20 || c.MaxPageSize != 40 {
		t.Errorf("got %+v", c)
	}

	bad := pagination.Config{DefaultPageSize: 50, MaxPageSize: 10}
	if err := bad.Finalize(nil); err == nil {
		t.Error("expected default > max to fail")
	}
}
