package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/diewo77/case-archive/internal/view"
)

// Explicit constant for 303 See Other (Post/Redirect/Get)
const statusSeeOther = 303

// renderTemplate uses the shared view.Render to keep layout and funcs uniform.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		log.Printf("render %s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := view.Render(w, r, "404.html", nil); err != nil {
		if _, werr := w.Write([]byte("not found")); werr != nil {
			_ = werr
		}
	}
}

// flashFromQuery translates the ?success / ?error flags carried through the
// Post/Redirect/Get cycle into a user-facing line.
func flashFromQuery(r *http.Request) (string, string) {
	if v := r.URL.Query().Get("success"); v != "" {
		switch v {
		case "created":
			return "Record created.", ""
		case "updated":
			return "Record updated.", ""
		case "deleted":
			return "Record deleted.", ""
		}
	}
	if v := r.URL.Query().Get("error"); v != "" {
		switch v {
		case "has_cases":
			return "", "City still has cases assigned. Move or delete them first."
		default:
			return "", "Could not complete the operation. Try again."
		}
	}
	return "", ""
}

// parseWhen accepts the timestamp formats the admin forms and API send.
func parseWhen(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
