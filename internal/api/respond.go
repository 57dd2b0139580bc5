package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/multierr"

	"github.com/dgallion1/chapterdesk/internal/chapter"
	"github.com/dgallion1/chapterdesk/internal/editor"
)

const maxJSONBody = 8 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeError reports a refusal or failure. Aggregated refusals list each
// cause under "details".
func writeError(w http.ResponseWriter, err error) {
	body := map[string]any{"error": err.Error()}
	if errs := multierr.Errors(err); len(errs) > 1 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, e.Error())
		}
		body["details"] = details
	}
	writeJSON(w, statusFor(err), body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chapter.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chapter.ErrLastChapter),
		errors.Is(err, editor.ErrNothingToSplit),
		errors.Is(err, editor.ErrConfirmationPending),
		errors.Is(err, editor.ErrNoPendingConfirmation),
		errors.Is(err, editor.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, chapter.ErrEmptyTitle),
		errors.Is(err, chapter.ErrDuplicateID),
		errors.Is(err, chapter.ErrNoChapters),
		errors.Is(err, editor.ErrEmptyDocumentTitle),
		errors.Is(err, editor.ErrEmptyChapterContent),
		errors.Is(err, editor.ErrUnknownLabel):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editor.ErrSurfaceNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, editor.ErrSinkFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
	return false
}
