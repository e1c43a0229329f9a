package handlers

import (
	"net/http"

	"github.com/bobmcallan/allocation-lab/internal/illustrations"
)

// LearnHandler serves lesson illustration data.
type LearnHandler struct{}

// NewLearnHandler creates a new learn handler.
func NewLearnHandler() *LearnHandler {
	return &LearnHandler{}
}

// ServeIndex handles GET /api/learn.
func (h *LearnHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, illustrations.Lessons())
}

// ServeLesson handles GET /api/learn/{slug}.
func (h *LearnHandler) ServeLesson(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	lesson, err := illustrations.LessonBySlug(r.PathValue("slug"))
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, lesson)
}
