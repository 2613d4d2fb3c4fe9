package repository

import (
	"context"

	"travel_journal/internal/models"
)

type Authorization interface {
	Register(ctx context.Context, email, username, password string) (models.AuthResponse, error)
	Login(ctx context.Context, identifier, password string) (models.AuthResponse, error)
}

type ArticleRepo interface {
	List(ctx context.Context, q models.ArticleQuery) (models.ArticlePage, error)
	Get(ctx context.Context, documentID string) (models.Article, error)
	Create(ctx context.Context, in models.ArticleInput) (models.Article, error)
	Update(ctx context.Context, documentID string, in models.ArticleInput) (models.Article, error)
	Delete(ctx context.Context, documentID string) error
}

type CategoryRepo interface {
	List(ctx context.Context) ([]models.Category, error)
}

type ImageRepo interface {
	Upload(ctx context.Context, f models.ImageFile) (models.UploadedFile, error)
}

// TokenSource yields the bearer token of the current session, "" when logged out.
type TokenSource interface {
	Token() string
}

// Repository groups the backend resources as seen by one session.
type Repository struct {
	Auth       Authorization
	Articles   ArticleRepo
	Categories CategoryRepo
	Images     ImageRepo
}

// NewRepository binds the shared client to a session's token source.
func NewRepository(c *Client, tokens TokenSource) *Repository {
	b := &backend{client: c, tokens: tokens}
	return &Repository{
		Auth:       NewAuthREST(b),
		Articles:   NewArticleREST(b),
		Categories: NewCategoryREST(b),
		Images:     NewImageREST(b),
	}
}
