package web

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/JonMunkholm/housing/internal/config"
	"github.com/JonMunkholm/housing/internal/core"
	"github.com/JonMunkholm/housing/internal/logging"
	"github.com/JonMunkholm/housing/internal/web/templates"
)

const pageTitle = "Housing report"

// handleHealth reports liveness and the configured source.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"source":         s.service.SourceName(),
		"activeAnalyses": s.limiter.Active(),
		"maxConcurrent":  s.limiter.Capacity(),
	})
}

// handleDashboard renders the report for the configured source.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Analyze(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderReport(w, r, report)
}

// handleReport returns the report for the configured source as JSON.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Analyze(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleAnalyze builds a report from the request body. The body may be a
// raw CSV, a multipart form with a "file" field, or a JSON array of rows.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	src, err := s.uploadSource(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	report, err := s.service.AnalyzeSource(r.Context(), src)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, report)
		return
	}
	s.renderReport(w, r, report)
}

// handleDownloadTemplate sends an empty CSV containing only the header row.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="housing_template.csv"`)

	cw := csv.NewWriter(w)
	cw.Comma = s.cfg.Input.DelimiterRune()
	if err := cw.Write(core.ColumnNames()); err != nil {
		logging.FromContext(r.Context()).Error("write template", "error", err)
		return
	}
	cw.Flush()
}

func (s *Server) renderReport(w http.ResponseWriter, r *http.Request, report *core.Report) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page(pageTitle, templates.Report(report)).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render report", "error", err)
	}
}

// uploadSource picks a core.Source for the request body by content type.
func (s *Server) uploadSource(r *http.Request) (core.Source, error) {
	opts := core.CSVOptions{Delimiter: s.cfg.Input.DelimiterRune()}
	if d := r.URL.Query().Get("delimiter"); d != "" {
		opts.Delimiter = (&config.InputConfig{Delimiter: d}).DelimiterRune()
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		return s.multipartSource(r, opts)
	case "application/json":
		return jsonSource(r.Body)
	}

	if r.ContentLength == 0 {
		return nil, errNoFile
	}
	return core.ReaderSource{Label: "upload", Reader: r.Body, Options: opts}, nil
}

func (s *Server) multipartSource(r *http.Request, opts core.CSVOptions) (core.Source, error) {
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, errNoFile
	}
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}

	label := header.Filename
	if label == "" {
		label = "upload"
	}
	return core.ReaderSource{Label: label, Reader: bytes.NewReader(data), Options: opts}, nil
}

// jsonSource decodes a JSON array of objects keyed by column name.
// Numbers keep their literal text so they are coerced by the CSV rules.
func jsonSource(body io.Reader) (core.Source, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		if isTooLarge(err) {
			return nil, err
		}
		return nil, &core.FormatError{Reason: "invalid json: " + err.Error()}
	}

	rows := make([]core.Row, len(records))
	for i, rec := range records {
		row := make(core.Row, len(rec))
		for k, v := range rec {
			switch val := v.(type) {
			case nil:
				continue
			case string:
				row[k] = val
			case json.Number:
				row[k] = val.String()
			default:
				row[k] = fmt.Sprint(val)
			}
		}
		rows[i] = row
	}
	return core.RowSource{Label: "json", Rows: rows}, nil
}
