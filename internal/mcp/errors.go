package mcp

import (
	"errors"
	"fmt"

	"github.com/rgould/proofdesk/internal/domain/assist"
	"github.com/rgould/proofdesk/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Errors it does not
// recognize pass through and surface as internal errors.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "project not found", RecoveryHint: "Check the id or call list_projects"}
	case errors.Is(err, project.ErrProjectExists):
		return &APIError{Code: "ALREADY_EXISTS", Message: "a project with this id already exists", RecoveryHint: "Pick a different id or open the existing project"}
	case errors.Is(err, project.ErrStaleEtag):
		return &APIError{Code: "PRECONDITION_FAILED", Message: "the project changed since it was read", RecoveryHint: "Reload with get_project, reapply your edits, then save again"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, assist.ErrEmptyPrompt):
		return &APIError{Code: "BAD_REQUEST", Message: "prompt is required"}
	case errors.Is(err, assist.ErrMissingAPIKey):
		return &APIError{Code: "BAD_REQUEST", Message: "no API key supplied or configured", RecoveryHint: "Call update_settings with api_key"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
