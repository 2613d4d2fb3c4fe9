package service

import (
	tj "travel_journal"
	"travel_journal/internal/models"
)

// View is the full state of one page, re-sent after every change.
type View struct {
	Route  RouteName    `json:"route"`
	Path   string       `json:"path"`
	User   *models.User `json:"user,omitempty"`
	Auth   *AuthView    `json:"auth,omitempty"`
	List   *ListView    `json:"list,omitempty"`
	Detail *DetailView  `json:"detail,omitempty"`
	Form   *FormView    `json:"form,omitempty"`
	Notice string       `json:"notice,omitempty"`
}

type ListView struct {
	Articles        []models.Article  `json:"articles"`
	Pagination      models.Pagination `json:"pagination"`
	Filter          ArticleFilter     `json:"filter"`
	Draft           string            `json:"draft"`
	Searching       bool              `json:"searching"`
	Status          ListStatus        `json:"status"`
	Appending       bool              `json:"appending"`
	HasMore         bool              `json:"has_more"`
	Error           string            `json:"error,omitempty"`
	Categories      []models.Category `json:"categories"`
	CategoriesError string            `json:"categories_error,omitempty"`
	CanCreate       bool              `json:"can_create"`
	ActionError     string            `json:"action_error,omitempty"`
}

type DetailView struct {
	Article  *models.Article `json:"article,omitempty"`
	Loading  bool            `json:"loading"`
	CanEdit  bool            `json:"can_edit"`
	Deleting bool            `json:"deleting"`
	Error    string          `json:"error,omitempty"`
}

type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

type FormView struct {
	Mode        FormMode          `json:"mode"`
	DocumentID  string            `json:"document_id,omitempty"`
	Values      ArticleForm       `json:"values"`
	ImageName   string            `json:"image_name,omitempty"`
	Categories  []models.Category `json:"categories"`
	Loading     bool              `json:"loading"`
	Submitting  bool              `json:"submitting"`
	Errors      FieldErrors       `json:"errors,omitempty"`
	UploadError string            `json:"upload_error,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type AuthView struct {
	Submitting bool        `json:"submitting"`
	Errors     FieldErrors `json:"errors,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type FrameKind string

const (
	FrameView     FrameKind = "view"
	FrameRedirect FrameKind = "redirect"
)

// Frame is one message pushed to the browser tab.
type Frame struct {
	Kind FrameKind `json:"kind"`
	Path string    `json:"path"`
	View *View     `json:"view,omitempty"`
}

func errorMessage(err error) string {
	return tj.UserMessage(err)
}
