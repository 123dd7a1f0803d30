package handler

import "github.com/userforge/user-api/internal/core/domain"

// userResponse is the public projection of a user: never the password hash.
type userResponse struct {
	ID    uint        `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
