package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jonathan/career-guide/internal/types"
)

// handleListCareerOptions returns the user's current career options batch.
// With a recommendationId the assessment's ownership is checked first.
func (s *Server) handleListCareerOptions(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to get career recommendations"

	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	if raw := chi.URLParam(r, "recommendationId"); raw != "" {
		id, err := parseAssessmentID(raw)
		if err != nil {
			s.handleError(w, r, err, failed)
			return
		}
		if _, err := s.ownedAssessment(r.Context(), user, id); err != nil {
			s.handleError(w, r, err, failed)
			return
		}
	}

	options, err := s.store.ListCareerOptions(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}

	if len(options) == 0 {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "No career recommendations found. Please complete the career assessment first.",
			"data": map[string]any{
				"career_options":      []CareerOptionView{},
				"has_recommendations": false,
			},
		})
		return
	}

	views := make([]CareerOptionView, 0, len(options))
	for _, o := range options {
		views = append(views, NewCareerOptionView(o))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Career recommendations retrieved successfully",
		"data": map[string]any{
			"career_options":      views,
			"has_recommendations": true,
			"count":               len(views),
		},
	})
}

// handleRoadmap builds a roadmap for the career named in the URL from the
// assessment's profile and follow-up answers. It always returns a roadmap
// for an owned assessment.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to generate roadmap"

	id, err := parseAssessmentID(chi.URLParam(r, "recommendationId"))
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	title := DecodeCareerTitle(chi.URLParam(r, "title"))
	if title == "" {
		s.handleError(w, r, &ErrValidation{Field: "title", Message: "is required"}, failed)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	a, err := s.ownedAssessment(r.Context(), user, id)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}

	supplemental := types.FilterAnswered(types.AnswersToQA(a.AIAnswers))
	roadmap := s.generator.CareerRoadmap(r.Context(), title, a.Profile, supplemental)
	if roadmap.Fallback {
		s.log.Info("served fallback roadmap", "recommendation_id", a.ID, "career", title)
	}

	s.dataResponse(w, http.StatusOK, NewRoadmapView(roadmap))
}
