package models

type Category struct {
	ID          int    `json:"id"`
	DocumentID  string `json:"documentId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
