package dto

import "github.com/ignatzorin/reactions-backend/internal/models"

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ReactionListResponse struct {
	Reactions []models.Reaction `json:"reactions"`
}

type ReactingUsersResponse struct {
	Users []models.User `json:"users"`
}

// ToggleResponse: reaction == nil и removed == true, если реакция снята.
type ToggleResponse struct {
	Reaction *models.Reaction `json:"reaction"`
	Removed  bool             `json:"removed"`
}

type SummaryResponse struct {
	Summary map[string]int64 `json:"summary"`
	Total   int64            `json:"total"`
}

type CountResponse struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type MyReactionResponse struct {
	IsReacted bool             `json:"is_reacted"`
	Reaction  *models.Reaction `json:"reaction"`
}
