package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/server/middleware"
	"github.com/jonathan/career-guide/internal/types"
)

// handleGetMe returns the identity asserted by the bearer token.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"uid": id.SubjectID, "email": id.Email})
}

// handleUpsertMe stores the authenticated identity and returns the user row.
func (s *Server) handleUpsertMe(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.store.UpsertUser(r.Context(), id.SubjectID, id.Email)
	if err != nil {
		s.handleError(w, r, err, "Failed to save user")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.UpsertUserResponse{
		Message: "User saved",
		User:    user.ToAPI(),
	})
}

// currentUser resolves the authenticated identity to a stored user,
// creating the row on first use.
func (s *Server) currentUser(r *http.Request) (*db.User, error) {
	id, err := middleware.GetIdentity(r)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserBySubject(r.Context(), id.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user != nil {
		return user, nil
	}
	user, err = s.store.UpsertUser(r.Context(), id.SubjectID, id.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// parseAssessmentID parses a path parameter as a positive assessment id.
func parseAssessmentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: "recommendationId", Message: "must be a positive integer"}
	}
	return id, nil
}

// ownedAssessment loads an assessment and checks that user owns it:
// missing is 404, someone else's is 403.
func (s *Server) ownedAssessment(ctx context.Context, user *db.User, id int64) (*db.Assessment, error) {
	a, err := s.store.GetAssessment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if a == nil {
		return nil, &ErrNotFound{Resource: "recommendation"}
	}
	if a.UserID != user.ID {
		return nil, &ErrForbidden{}
	}
	return a, nil
}
