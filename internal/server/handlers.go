package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-dms/internal/compare"
	"github.com/inodb/vibe-dms/internal/dataset"
)

type indexData struct {
	Datasets []string
	Flags    []compare.Flag
	MaxFlags int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Datasets: s.catalog.Names(),
		Flags:    compare.Flags,
		MaxFlags: compare.MaxFlags,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render index", zap.Error(err))
	}
}

// DatasetsResponse is the body of GET /api/datasets.
type DatasetsResponse struct {
	Datasets []dataset.Summary `json:"datasets"`
	Flags    []compare.Flag    `json:"flags"`
	MaxFlags int               `json:"max_flags"`
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, DatasetsResponse{
		Datasets: s.catalog.Summaries(),
		Flags:    compare.Flags,
		MaxFlags: compare.MaxFlags,
	})
}

func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	sel := SelectionFromQuery(r)

	res, err := compare.Run(s.catalog, sel)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dataset.ErrUnknownDataset) {
			status = http.StatusNotFound
		}
		s.logger.Error("compute figures",
			zap.String("file1", sel.File1),
			zap.String("file2", sel.File2),
			zap.Strings("flags", sel.Flags),
			zap.Error(err))
		s.writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, res.Figures())
}

// SelectionFromQuery reads file1, file2 and flags. Flags may repeat or be
// comma-separated; empty entries are dropped.
func SelectionFromQuery(r *http.Request) compare.Selection {
	q := r.URL.Query()
	sel := compare.Selection{
		File1: q.Get("file1"),
		File2: q.Get("file2"),
	}
	for _, v := range q["flags"] {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				sel.Flags = append(sel.Flags, f)
			}
		}
	}
	return sel
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", zap.Int("status", status), zap.Error(err))
	}
}
