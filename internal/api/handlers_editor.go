package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/session"
	"github.com/dgallion1/chapterdesk/internal/surface"
)

// documentResponse is a session snapshot plus per-operation results.
type documentResponse struct {
	session.Snapshot
	Fragments int  `json:"fragments,omitempty"`
	Navigated bool `json:"navigated,omitempty"`
}

type editFunc func(d *editor.Document, buf *surface.Buffer) error

// apply runs fn on the URL's session and answers with the resulting
// snapshot, or with the refusal fn returned.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, code int, fn editFunc) {
	s.applyWith(w, r, code, fn, nil)
}

func (s *Server) applyWith(w http.ResponseWriter, r *http.Request, code int, fn editFunc, decorate func(*documentResponse)) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.DoSnapshot(fn)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := documentResponse{Snapshot: snap}
	if decorate != nil {
		decorate(&resp)
	}
	if snap.Closed {
		s.sessions.Remove(sess.ID)
		resp.Navigated = true
		code = http.StatusOK
	}
	writeJSON(w, code, resp)
}

type titleRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		d.SetTitle(req.Title)
		return nil
	})
}

func (s *Server) handleSetLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.SetLabel(req.Label)
	})
}

type editRequest struct {
	Content *string `json:"content"`
	Cursor  *int    `json:"cursor"`
}

// handleEdit applies a user edit to the surface. The change notification
// writes it through to the active chapter.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == nil {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}
	s.apply(w, r, http.StatusOK, func(_ *editor.Document, buf *surface.Buffer) error {
		buf.Edit(*req.Content)
		if req.Cursor != nil {
			buf.SetCursor(*req.Cursor)
		}
		return nil
	})
}

func (s *Server) handleAddChapter(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, http.StatusCreated, func(d *editor.Document, _ *surface.Buffer) error {
		d.AddChapter()
		return nil
	})
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chapterID")
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.Activate(id)
	})
}

func (s *Server) handleRenameChapter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chapterID")
	var req titleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.RenameChapter(id, req.Title)
	})
}

// handleDeleteChapter only requests the delete; it is applied by confirm.
func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chapterID")
	s.apply(w, r, http.StatusAccepted, func(d *editor.Document, _ *surface.Buffer) error {
		_, err := d.RequestDelete(id)
		return err
	})
}

func (s *Server) handleInsertMarker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cursor *int `json:"cursor"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	s.apply(w, r, http.StatusOK, func(d *editor.Document, buf *surface.Buffer) error {
		if req.Cursor != nil {
			buf.SetCursor(*req.Cursor)
		}
		return d.InsertMarker()
	})
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var fragments int
	s.applyWith(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		n, err := d.Split()
		fragments = n
		return err
	}, func(resp *documentResponse) {
		resp.Fragments = fragments
	})
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.Publish(ctx)
	})
}

func (s *Server) handleToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		d.ToggleDarkMode()
		return nil
	})
}

// handleTitleEditing opens (POST) or closes (DELETE) document title editing.
func (s *Server) handleTitleEditing(editing bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
			if editing {
				d.BeginTitleEdit()
			} else {
				d.EndTitleEdit()
			}
			return nil
		})
	}
}

func (s *Server) handleBeginRename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "chapterID")
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.BeginRename(id)
	})
}

// handleCommitRename applies the inline draft. A blank draft is refused
// and editing stays open.
func (s *Server) handleCommitRename(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.CommitRename(req.Title)
	})
}

func (s *Server) handleCancelRename(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		d.CancelRename()
		return nil
	})
}

// handleBack navigates away at once when nothing is unsaved and otherwise
// leaves a confirmation pending (202).
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, http.StatusAccepted, func(d *editor.Document, _ *surface.Buffer) error {
		_, err := d.RequestBack()
		return err
	})
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.Confirm()
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, http.StatusOK, func(d *editor.Document, _ *surface.Buffer) error {
		return d.Cancel()
	})
}
