package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/models"
	"go.uber.org/zap"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to disk.
const multipartMemory = 8 << 20

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.config.MaxUploadBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	format, err := extract.FormatForPath(header.Filename)
	if err != nil {
		s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if err := s.probe(format); err != nil {
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "read upload failed")
		return
	}

	s.logger.Debug("extract request",
		zap.String("filename", header.Filename),
		zap.String("format", string(format)),
		zap.Int("bytes", len(content)),
	)
	text, err := s.extractor.ExtractBytes(content, format)
	if err != nil {
		s.logger.Warn("extraction failed", zap.String("filename", header.Filename), zap.Error(err))
		s.respondError(w, statusForError(err), err.Error())
		return
	}
	text = strings.TrimSpace(text)
	s.respondJSON(w, http.StatusOK, &models.ExtractResponse{
		ID:         uuid.New().String(),
		Filename:   header.Filename,
		Format:     string(format),
		Text:       text,
		Characters: utf8.RuneCountInString(text),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	var formats []models.FormatInfo
	for _, f := range extract.Formats() {
		info := models.FormatInfo{Format: string(f), Available: true}
		if err := s.probe(f); err != nil {
			info.Available = false
			info.Error = err.Error()
		}
		formats = append(formats, info)
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"formats": formats})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusForError(err error) int {
	var docErr *extract.DocumentError
	switch {
	case errors.Is(err, extract.ErrMissingDependency):
		return http.StatusServiceUnavailable
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &docErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
