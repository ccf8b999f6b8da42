package evidence_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/vantage/internal/evidence"
	"github.com/JaimeStill/vantage/pkg/storage"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", evidence.ErrNotFound, http.StatusNotFound},
		{"improvement missing", evidence.ErrImprovementNotFound, http.StatusNotFound},
		{"no attachment", evidence.ErrNoAttachment, http.StatusNotFound},
		{"too large", evidence.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", fmt.Errorf("%w: empty", evidence.ErrInvalidFile), http.StatusBadRequest},
		{"invalid note", evidence.ErrInvalidNote, http.StatusBadRequest},
		{"blob missing", fmt.Errorf("download: %w", storage.ErrNotFound), http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evidence.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		note    string
		wantErr bool
	}{
		{"valid", "Support ticket volume doubled after the release", false},
		{"blank", "  \n ", true},
		{"too long", strings.Repeat("n", 4001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := evidence.CreateCommand{ImprovementID: uuid.New(), Note: tt.note}
			err := cmd.Validate()
			if tt.wantErr != errors.Is(err, evidence.ErrInvalidNote) {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasAttachment(t *testing.T) {
	key := "evidence/a/b/report.pdf"
	if (evidence.Evidence{}).HasAttachment() {
		t.Error("note-only evidence reports an attachment")
	}
	if !(evidence.Evidence{StorageKey: &key}).HasAttachment() {
		t.Error("evidence with a storage key reports no attachment")
	}
}
