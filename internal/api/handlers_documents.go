package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/parser"
	"github.com/dgallion1/chapterdesk/internal/seed"
	"github.com/dgallion1/chapterdesk/internal/session"
)

// handleOpen starts a session from a JSON open payload or an uploaded file.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var (
		init   editor.Init
		source string
		ok     bool
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		init, source, ok = s.readUpload(w, r)
	} else {
		ok = decodeJSON(w, r, &init)
	}
	if !ok {
		return
	}

	sess, err := s.sessions.Open(init, source)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (editor.Init, string, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return editor.Init{}, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return editor.Init{}, "", false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return editor.Init{}, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return editor.Init{}, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return editor.Init{}, "", false
	}

	splitHeadings := s.cfg.SeedSplitHeadings
	if v := r.FormValue("split_headings"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			splitHeadings = b
		}
	}

	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return editor.Init{}, "", false
	}
	outline, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("upload parse failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return editor.Init{}, "", false
	}

	s.log.Info("upload parsed", "filename", filename, "sections", len(outline.Sections), "split_headings", splitHeadings)
	return seed.Init(outline, r.FormValue("title"), splitHeadings), filename, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"labels": editor.Labels})
}

// session looks up the document session named in the URL.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "docID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
