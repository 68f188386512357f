package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/alexanderramin/pensionbook/internal/domain"
	"github.com/alexanderramin/pensionbook/internal/importer"
)

type summaryResponse struct {
	domain.Summary
	LatestYear   *int                 `json:"latestYear,omitempty"`
	NetEstimates []domain.NetEstimate `json:"netEstimates,omitempty"`
}

type rowErrorResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Imported int                `json:"imported"`
	Added    int                `json:"added"`
	Replaced int                `json:"replaced"`
	Rejected []rowErrorResponse `json:"rejected"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var fields domain.RecordFields
	if err := decodeBody(w, r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fields.RetirementAge == 0 {
		fields.RetirementAge = domain.DefaultRetirementAge
	}
	if errs := domain.ValidateFields(fields); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, joinErrors(errs))
		return
	}

	record, err := s.records.Add(r.Context(), fields)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch domain.RecordPatch
	if err := decodeBody(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "patch sets no fields")
		return
	}

	found, err := s.records.Update(r.Context(), id, patch)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("record %s not found", id))
		return
	}

	record, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := s.records.Delete(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("record %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	res, err := s.records.ImportCSV(r.Context(), body)
	switch {
	case errors.Is(err, importer.ErrNoData), errors.Is(err, importer.ErrNoValidRows):
		resp := map[string]any{
			"error": map[string]any{"message": err.Error(), "type": "error"},
		}
		if res != nil {
			resp["rejected"] = rowErrors(res.Rejected)
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	case err != nil:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "csv body too large")
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Imported: res.Imported,
		Added:    res.Added,
		Replaced: res.Replaced,
		Rejected: rowErrors(res.Rejected),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	out, err := s.records.ExportCSV(r.Context())
	if errors.Is(err, importer.ErrNothingToExport) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, importer.ExportFileName(s.now())))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	resp := summaryResponse{Summary: domain.Summarize(records)}
	if latest, ok := domain.Latest(records); ok {
		resp.LatestYear = &latest.Year
		resp.NetEstimates = domain.NetEstimates(latest)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func rowErrors(rows []importer.RowError) []rowErrorResponse {
	out := make([]rowErrorResponse, len(rows))
	for i, row := range rows {
		out[i] = rowErrorResponse{Line: row.Line, Reason: row.Reason}
	}
	return out
}
