package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/types"
)

// handleSubmitAssessment saves the questionnaire without generating
// follow-up questions. Older clients post here.
func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var profile types.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := profile.Validate(); err != nil {
		s.handleError(w, r, validationError(err), "Invalid profile")
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Internal Server Error")
		return
	}
	a, err := s.store.CreateAssessment(r.Context(), user.ID, &profile)
	if err != nil {
		s.handleError(w, r, err, "Internal Server Error")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"message":           "Career recommendation saved successfully",
		"user_id":           user.ID,
		"recommendation_id": a.ID,
	})
}

// handleAISubmit saves the questionnaire and generates follow-up questions.
// Generation failure does not fail the request: the assessment is saved and
// the response reports has_ai_questions=false.
func (s *Server) handleAISubmit(w http.ResponseWriter, r *http.Request) {
	var profile types.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := profile.Validate(); err != nil {
		s.handleError(w, r, validationError(err), "Invalid profile")
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Internal Server Error")
		return
	}

	a, err := s.store.CreateAssessment(r.Context(), user.ID, &profile)
	if err != nil {
		s.handleError(w, r, err, "Internal Server Error")
		return
	}

	resp := map[string]any{
		"success":           true,
		"user_id":           user.ID,
		"recommendation_id": a.ID,
	}

	questions, err := s.generator.FollowUpQuestions(r.Context(), profile.ToQA(), s.cfg.QuestionCount)
	if err == nil {
		err = s.store.SaveGeneratedQuestions(r.Context(), a.ID, questions)
	}
	if err != nil {
		s.log.Warn("follow-up questions unavailable", "recommendation_id", a.ID, "error", err.Error())
		resp["message"] = "Form submitted successfully!"
		resp["has_ai_questions"] = false
		resp["ai_error"] = "AI questions could not be generated"
		s.jsonResponse(w, http.StatusCreated, resp)
		return
	}

	resp["message"] = "Form submitted and AI questions generated successfully!"
	resp["ai_questions"] = questions
	resp["has_ai_questions"] = true
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetAIQuestions returns the stored follow-up questions.
func (s *Server) handleGetAIQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := parseAssessmentID(chi.URLParam(r, "recommendationId"))
	if err != nil {
		s.handleError(w, r, err, "Failed to get AI questions")
		return
	}
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, "Failed to get AI questions")
		return
	}
	a, err := s.ownedAssessment(r.Context(), user, id)
	if err != nil {
		s.handleError(w, r, err, "Failed to get AI questions")
		return
	}

	questions := a.AIQuestions
	if questions == nil {
		questions = []types.GeneratedQuestion{}
	}
	s.dataResponse(w, http.StatusOK, map[string]any{
		"recommendation_id": a.ID,
		"ai_questions":      questions,
		"has_ai_questions":  len(questions) > 0,
	})
}

// handleAIAnswers stores the follow-up answers, then generates the final
// recommendations and the career options batch from all answers so far.
func (s *Server) handleAIAnswers(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to submit AI answers"

	var req types.AIAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, validationError(err), failed)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	a, err := s.ownedAssessment(r.Context(), user, req.RecommendationID)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	if err := s.store.SaveAIAnswers(r.Context(), a.ID, req.AIAnswers); err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	a.AIAnswers = req.AIAnswers
	qa := a.QA()

	var (
		recommendations types.RecommendationSet
		options         []types.CareerOption
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		recommendations, err = s.generator.CareerRecommendations(ctx, qa)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = s.generator.CareerOptions(ctx, qa, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.handleError(w, r, err, failed)
		return
	}

	if err := s.store.ReplaceCareerOptions(r.Context(), user.ID, options); err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	if err := s.store.SaveFinalRecommendations(r.Context(), a.ID, recommendations); err != nil {
		s.handleError(w, r, err, failed)
		return
	}

	s.dataResponse(w, http.StatusOK, map[string]any{
		"message":               "AI answers submitted, recommendations generated, and career options saved!",
		"user_id":               user.ID,
		"recommendation_id":     a.ID,
		"final_recommendations": recommendations,
		"career_options_count":  len(options),
	})
}

// handleListAssessments returns the user's assessments, newest first.
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to fetch career recommendations"
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	list, err := s.store.ListAssessments(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err, failed)
		return
	}
	if list == nil {
		list = []db.Assessment{}
	}
	s.dataResponse(w, http.StatusOK, list)
}

// handleGetAssessment returns one owned assessment.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to fetch career recommendation"
	id, err := parseAssessmentID(chi.URLParam(r, "recId"))
	if err != nil {
		s.handleError(w, r, err, failed)
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
	s.dataResponse(w, http.StatusOK, a)
}
