package comparisons

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/vantage/internal/decisions"
	"github.com/JaimeStill/vantage/pkg/handlers"
	"github.com/JaimeStill/vantage/pkg/routes"
)

// Handler exposes the ranking session of a board over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "comparisons"),
	}
}

// Routes returns the comparison routes nested under a board.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/boards/{id}",
		Tag:    "Comparisons",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/next", Handler: h.Next, Summary: "Get the next pair to compare"},
			{Method: "POST", Pattern: "/decisions", Handler: h.Decide, Summary: "Record a decision"},
			{Method: "DELETE", Pattern: "/decisions/{decisionId}", Handler: h.Undo, Summary: "Remove a decision"},
			{Method: "POST", Pattern: "/undo", Handler: h.UndoLast, Summary: "Undo the most recent decision"},
			{Method: "GET", Pattern: "/standings", Handler: h.Standings, Summary: "Get current standings"},
			{Method: "POST", Pattern: "/recompute", Handler: h.Recompute, Summary: "Recompute and store standings"},
		},
		Children: []routes.Group{
			{
				Prefix: "/snapshots",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Snapshots, Summary: "List standings snapshots"},
					{Method: "POST", Pattern: "", Handler: h.Snapshot, Summary: "Store a standings snapshot"},
					{Method: "GET", Pattern: "/{name}", Handler: h.OpenSnapshot, Summary: "Download a standings snapshot"},
				},
			},
		},
	}
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	m, err := h.sys.Next(r.Context(), boardID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, m)
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd decisions.RecordCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	out, err := h.sys.Decide(r.Context(), boardID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, out)
}

func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	decisionID, err := handlers.PathID(r, "decisionId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.Undo(r.Context(), boardID, decisionID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) UndoLast(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.UndoLast(r.Context(), boardID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.Standings(r.Context(), boardID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.Recompute(r.Context(), boardID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	snap, err := h.sys.Snapshot(r.Context(), boardID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, snap)
}

func (h *Handler) Snapshots(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	items, err := h.sys.Snapshots(r.Context(), boardID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) OpenSnapshot(w http.ResponseWriter, r *http.Request) {
	boardID, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	name := r.PathValue("name")

	blob, err := h.sys.OpenSnapshot(r.Context(), boardID, name)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("snapshot download interrupted", "board_id", boardID, "name", name, "error", err)
	}
}
