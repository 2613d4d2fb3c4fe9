package models

// User is the backend account that owns articles.
type User struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}
