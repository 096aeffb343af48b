package server

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/romanch203/DataConverterPro/export"
	"github.com/romanch203/DataConverterPro/pipeline"
	"github.com/romanch203/DataConverterPro/store"
)

// conversionResponse is the success body for single conversions.
type conversionResponse struct {
	Success      bool     `json:"success"`
	ConversionID string   `json:"conversion_id"`
	Filename     string   `json:"filename"`
	Tables       int      `json:"tables"`
	Rows         int      `json:"rows"`
	Columns      int      `json:"columns"`
	Accuracy     float64  `json:"accuracy"`
	Completeness float64  `json:"completeness"`
	Consistency  float64  `json:"consistency"`
	Warnings     []string `json:"warnings,omitempty"`
	DownloadURL  string   `json:"download_url"`
}

// batchEntry is one file's outcome inside a batch response.
type batchEntry struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message,omitempty"`

	ConversionID string  `json:"conversion_id,omitempty"`
	Tables       int     `json:"tables,omitempty"`
	Rows         int     `json:"rows,omitempty"`
	Accuracy     float64 `json:"accuracy,omitempty"`
	DownloadURL  string  `json:"download_url,omitempty"`
}

type batchResponse struct {
	Success   bool         `json:"success"`
	Total     int          `json:"total"`
	Converted int          `json:"converted"`
	Failed    int          `json:"failed"`
	Results   []batchEntry `json:"results"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.readUpload(w, r, "file")
	if err != nil {
		writeConversionError(w, err)
		return
	}
	if err := validateUpload(filename, data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_file", err.Error())
		return
	}

	conv, err := s.pipe.Convert(filename, data)
	if err != nil {
		s.log.Warn().Str("file", filename).Err(err).Msg("conversion failed")
		writeConversionError(w, err)
		return
	}

	rec, err := s.persist(r.Context(), conv)
	if err != nil {
		s.log.Error().Err(err).Msg("persisting conversion")
		writeError(w, http.StatusInternalServerError, "internal", "failed to store conversion output")
		return
	}

	writeJSON(w, http.StatusOK, conversionResponse{
		Success:      true,
		ConversionID: conv.ID,
		Filename:     filename,
		Tables:       rec.TableCount,
		Rows:         rec.RowCount,
		Columns:      rec.ColumnCount,
		Accuracy:     conv.Quality.AccuracyScore,
		Completeness: conv.Quality.Completeness,
		Consistency:  conv.Quality.Consistency,
		Warnings:     conv.Warnings,
		DownloadURL:  "/api/download/" + conv.ID,
	})
}

func (s *Server) handleBatchConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeConversionError(w, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "no files uploaded")
		return
	}

	var items []pipeline.BatchItem
	entries := make([]batchEntry, len(files))
	indexes := make([]int, 0, len(files))
	for i, fh := range files {
		entries[i].Filename = fh.Filename
		data, err := readMultipartFile(fh)
		if err != nil {
			entries[i].Error = "invalid_file"
			entries[i].Message = err.Error()
			continue
		}
		if err := validateUpload(fh.Filename, data); err != nil {
			entries[i].Error = "invalid_file"
			entries[i].Message = err.Error()
			continue
		}
		items = append(items, pipeline.BatchItem{Filename: fh.Filename, Data: data})
		indexes = append(indexes, i)
	}

	results := s.pipe.ConvertBatch(r.Context(), items, s.cfg.Workers)

	converted := 0
	for ri, res := range results {
		entry := &entries[indexes[ri]]
		if res.Err != nil {
			entry.Error = string(pipeline.KindOf(res.Err))
			entry.Message = res.Err.Error()
			continue
		}
		rec, err := s.persist(r.Context(), res.Conv)
		if err != nil {
			s.log.Error().Err(err).Msg("persisting conversion")
			entry.Error = "internal"
			entry.Message = "failed to store conversion output"
			continue
		}
		entry.Success = true
		entry.ConversionID = res.Conv.ID
		entry.Tables = rec.TableCount
		entry.Rows = rec.RowCount
		entry.Accuracy = res.Conv.Quality.AccuracyScore
		entry.DownloadURL = "/api/download/" + res.Conv.ID
		converted++
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Success:   converted > 0,
		Total:     len(files),
		Converted: converted,
		Failed:    len(files) - converted,
		Results:   entries,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	f, err := os.Open(rec.OutputPath)
	if err != nil {
		s.log.Error().Str("path", rec.OutputPath).Err(err).Msg("output file missing")
		writeError(w, http.StatusNotFound, "not_found", "conversion output no longer available")
		return
	}
	defer f.Close()

	base := rec.OriginalFilename
	base = base[:len(base)-len(filepath.Ext(base))]
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", base+".csv"))
	_, _ = io.Copy(w, f)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	recent, err := s.store.List(r.Context(), 10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "ledger unavailable")
		return
	}

	type recentConversion struct {
		ID       string  `json:"id"`
		Filename string  `json:"filename"`
		Tables   int     `json:"tables"`
		Accuracy float64 `json:"accuracy"`
	}
	out := make([]recentConversion, len(recent))
	for i, rec := range recent {
		out[i] = recentConversion{
			ID:       rec.ID,
			Filename: rec.OriginalFilename,
			Tables:   rec.TableCount,
			Accuracy: rec.Accuracy,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  "ok",
		"recent":  out,
	})
}

// readUpload extracts one uploaded file from a multipart request, bounded
// by the configured size cap.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return "", nil, err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing %q upload field: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// persist writes the CSV output to disk and records the conversion in the
// ledger.
func (s *Server) persist(ctx context.Context, conv *pipeline.Conversion) (store.Record, error) {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return store.Record{}, fmt.Errorf("creating output dir: %w", err)
	}

	outPath := filepath.Join(s.cfg.OutputDir, conv.ID+".csv")
	f, err := os.Create(outPath)
	if err != nil {
		return store.Record{}, fmt.Errorf("creating output file: %w", err)
	}
	if err := export.WriteCSV(f, conv.Tables); err != nil {
		f.Close()
		return store.Record{}, fmt.Errorf("writing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return store.Record{}, err
	}

	sum := export.Summarize(conv.Tables)
	rec := store.Record{
		ID:               conv.ID,
		OriginalFilename: conv.SourceFile,
		OutputPath:       outPath,
		TableCount:       sum.TableCount,
		RowCount:         sum.RowCount,
		ColumnCount:      sum.ColumnCount,
		Accuracy:         conv.Quality.AccuracyScore,
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return store.Record{}, err
	}
	return rec, nil
}
