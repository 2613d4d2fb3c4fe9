package repository

import (
	"context"
	"net/http"

	tj "travel_journal"
	"travel_journal/internal/models"
)

type CategoryREST struct {
	b *backend
}

func NewCategoryREST(b *backend) *CategoryREST {
	return &CategoryREST{b: b}
}

var _ CategoryRepo = (*CategoryREST)(nil)

const categoriesPath = "/categories"

func (r *CategoryREST) List(ctx context.Context) ([]models.Category, error) {
	var env tj.Envelope[[]models.Category]
	if err := r.b.do(ctx, call{op: opListCategories, method: http.MethodGet, path: categoriesPath}, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
