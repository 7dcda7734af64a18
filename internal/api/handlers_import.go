// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	viewingimport "github.com/tomtom215/viewstats/internal/import"
	"github.com/tomtom215/viewstats/internal/ingest"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/models"
	"github.com/tomtom215/viewstats/internal/store"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// writeGrace is added to the import timeout for writing the response.
const writeGrace = 10 * time.Second

// Import accepts a Netflix export (ZIP or CSV) as multipart field "file" and
// runs the full import before answering.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.importer.Running() {
		respondFailure(w, r, viewingimport.ErrImportInProgress)
		return
	}

	limit := h.config.Import.MaxUploadBytes
	if r.ContentLength > limit {
		respondTooLarge(w, limit)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondTooLarge(w, limit)
			return
		}
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "expected a multipart form upload", nil)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	req := ImportRequest{Language: r.FormValue("language")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "file is required",
			map[string]interface{}{"field": "file"})
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	file := ingest.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	summary, err := h.runImport(r, w, func(ctx context.Context) (*models.ImportSummary, error) {
		return h.importer.Import(ctx, viewingimport.Request{
			Source:   models.ImportSourceUpload,
			File:     file,
			Language: h.requestLanguage(r, req.Language),
		})
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondData(w, http.StatusCreated, summary, start)
}

// LoadSample imports the embedded sample dataset.
func (h *Handler) LoadSample(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ImportRequest{Language: r.URL.Query().Get("language")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	summary, err := h.runImport(r, w, func(ctx context.Context) (*models.ImportSummary, error) {
		return h.importer.LoadSample(ctx, h.requestLanguage(r, req.Language))
	})
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	respondData(w, http.StatusCreated, summary, start)
}

// runImport bounds fn by the import timeout and extends the write deadline
// so the server timeout does not cut off a long enrichment.
func (h *Handler) runImport(r *http.Request, w http.ResponseWriter, fn func(context.Context) (*models.ImportSummary, error)) (*models.ImportSummary, error) {
	timeout := h.config.Import.Timeout
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(timeout + writeGrace)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Could not extend write deadline")
	}

	return fn(ctx)
}

// requestLanguage prefers the explicit language, then Accept-Language.
func (h *Handler) requestLanguage(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return r.Header.Get("Accept-Language")
}

// ImportStatus reports whether an import is running and the last summary.
func (h *Handler) ImportStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := models.ImportStatus{
		Running:    h.importer.Running(),
		LastImport: h.importer.LastSummary(),
	}
	if status.LastImport == nil {
		summary, err := h.store.ImportSummary(r.Context())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondFailure(w, r, err)
			return
		}
		status.LastImport = summary
	}

	respondData(w, http.StatusOK, status, start)
}

// DataStatus reports whether a complete dataset is stored.
func (h *Handler) DataStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	hasData, err := h.store.Has(r.Context())
	if err != nil {
		respondFailure(w, r, err)
		return
	}

	status := models.DataStatus{HasData: hasData}
	if hasData {
		summary, err := h.store.ImportSummary(r.Context())
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondFailure(w, r, err)
			return
		}
		status.LastImport = summary
	}

	respondData(w, http.StatusOK, status, start)
}

// DeleteData removes every stored record. It is refused while an import runs.
func (h *Handler) DeleteData(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.importer.Running() {
		respondFailure(w, r, viewingimport.ErrImportInProgress)
		return
	}
	if err := h.store.DeleteAll(r.Context()); err != nil {
		respondFailure(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Stored viewing data deleted")
	respondData(w, http.StatusOK, models.DataStatus{HasData: false}, start)
}

func respondTooLarge(w http.ResponseWriter, limit int64) {
	respondError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
		"upload exceeds the size limit",
		map[string]interface{}{"limit_bytes": limit})
}
