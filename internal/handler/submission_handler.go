package handler

import (
	"io"
	"net/http"

	"github.com/metaverse-club/clubforms/internal/models"
	"github.com/metaverse-club/clubforms/internal/service"
)

type SubmissionHandler struct {
	svc *service.Submissions
}

func NewSubmissionHandler(svc *service.Submissions) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

func (h *SubmissionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var sub models.ContactSubmission
	if err := readJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Contact(r.Context(), sub); err != nil {
		respondFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Contact form received and email sent.",
	})
}

func (h *SubmissionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var sub models.JoinSubmission
	if err := readJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Join(r.Context(), sub); err != nil {
		respondFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Join request received and email sent.",
	})
}

// Register accepts multipart form data: the registration fields plus an
// optional payment screenshot. The declared filename rides along on the
// submission so validation can enforce the contact-number-or-screenshot
// rule before anything is written.
func (h *SubmissionHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(12 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	sub := models.RegistrationSubmission{
		Name:          r.FormValue("name"),
		RegNumber:     r.FormValue("reg_number"),
		Email:         r.FormValue("email"),
		Department:    r.FormValue("department"),
		ContactNumber: r.FormValue("contact_number"),
	}

	var screenshot []byte
	if file, fh, err := r.FormFile("screenshot"); err == nil {
		defer file.Close()
		screenshot, err = io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read screenshot")
			return
		}
		sub.ScreenshotName = fh.Filename
	}

	if err := h.svc.Register(r.Context(), sub, screenshot); err != nil {
		respondFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration successful"})
}
