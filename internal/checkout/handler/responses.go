package handler

import "checkout/internal/checkout/models"

// SessionResponse wraps a session snapshot.
type SessionResponse struct {
	Session *models.Session `json:"session"`
}

// ConfirmResponse carries the action the caller must take next.
type ConfirmResponse struct {
	Session           *models.Session     `json:"session"`
	ClientAction      models.ClientAction `json:"client_action"`
	ChallengeRendered bool                `json:"challenge_rendered"`
}

func toConfirmResponse(result *models.ConfirmResult) *ConfirmResponse {
	return &ConfirmResponse{
		Session:           result.Session,
		ClientAction:      result.Action,
		ChallengeRendered: result.ChallengeRendered,
	}
}
