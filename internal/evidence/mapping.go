package evidence

import (
	"github.com/JaimeStill/vantage/pkg/query"
	"github.com/JaimeStill/vantage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "evidence", "e").
	Project("id", "ID").
	Project("improvement_id", "ImprovementID").
	Project("note", "Note").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

func scanEvidence(s repository.Scanner) (Evidence, error) {
	var e Evidence
	err := s.Scan(
		&e.ID,
		&e.ImprovementID,
		&e.Note,
		&e.Filename,
		&e.ContentType,
		&e.SizeBytes,
		&e.PageCount,
		&e.StorageKey,
		&e.CreatedAt,
	)
	return e, err
}
