package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"benchgate/domain/core"
	"benchgate/domain/run"
	"benchgate/ports"
)

// maxUploadBytes caps multipart uploads; consumption tables are small.
const maxUploadBytes = 32 << 20

// handleValidate accepts a multipart upload under the "file" field, runs
// the validation pipeline on it, and returns the report JSON. Bad data
// yields a 200 with a FAIL report; only transport and internal faults
// produce error statuses.
func (a *App) handleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "expected multipart form with a 'file' field")
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer upload.Close()

	// Preserve the extension so xlsx uploads take the Excel path.
	tmpDir, err := os.MkdirTemp("", "benchgate-upload")
	if err != nil {
		respondJSONError(w, err)
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(header.Filename))
	dst, err := os.Create(tmpPath)
	if err != nil {
		respondJSONError(w, err)
		return
	}
	if _, err := io.Copy(dst, upload); err != nil {
		dst.Close()
		respondJSONError(w, err)
		return
	}
	dst.Close()

	result, err := a.runner.Validate(tmpPath, a.opts)
	if err != nil {
		respondJSONError(w, err)
		return
	}

	report := result.Report
	// Report the caller's filename, not the temp path.
	report.InputFile = header.Filename

	if a.ledger != nil {
		if err := a.ledger.RecordRun(r.Context(), run.NewRecord(report)); err != nil {
			a.logger.Warn("Failed to record run in ledger: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, report)
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if a.ledger == nil {
		respondJSON(w, http.StatusOK, []run.Record{})
		return
	}

	records, err := a.ledger.ListRuns(r.Context(), ports.RunFilters{
		Status: r.URL.Query().Get("status"),
		Limit:  50,
	})
	if err != nil {
		respondJSONError(w, err)
		return
	}
	if records == nil {
		records = []run.Record{}
	}
	respondJSON(w, http.StatusOK, records)
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if a.ledger == nil {
		respondError(w, http.StatusNotFound, "run ledger not configured")
		return
	}

	id := core.RunID(chi.URLParam(r, "id"))
	record, err := a.ledger.GetRun(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			respondError(w, http.StatusNotFound, "run not found")
			return
		}
		respondJSONError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	if a.ledger == nil {
		respondJSON(w, http.StatusOK, run.Summary{})
		return
	}

	summary, err := a.ledger.Summary(r.Context())
	if err != nil {
		respondJSONError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
