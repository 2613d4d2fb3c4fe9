package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	tj "travel_journal"
	"travel_journal/internal/models"
)

type ArticleREST struct {
	b *backend
}

func NewArticleREST(b *backend) *ArticleREST {
	return &ArticleREST{b: b}
}

var _ ArticleRepo = (*ArticleREST)(nil)

const articlesPath = "/articles"

// Query parameter names understood by the backend.
const (
	paramPage           = "pagination[page]"
	paramPageSize       = "pagination[pageSize]"
	paramTitleFilter    = "filters[title][$containsi]"
	paramCategoryFilter = "filters[category][name][$containsi]"
	paramPopulate       = "populate"
)

type articlePayload struct {
	Data models.ArticleInput `json:"data"`
}

// listQuery encodes q; empty filters are left out entirely.
func listQuery(q models.ArticleQuery) url.Values {
	v := url.Values{}
	v.Set(paramPage, strconv.Itoa(q.Page))
	v.Set(paramPageSize, strconv.Itoa(q.PageSize))
	if q.Title != "" {
		v.Set(paramTitleFilter, q.Title)
	}
	if q.Category != "" {
		v.Set(paramCategoryFilter, q.Category)
	}
	v.Set(paramPopulate, "*")
	return v
}

func articlePath(documentID string) string {
	return articlesPath + "/" + url.PathEscape(documentID)
}

// List fetches one page of articles, relations expanded.
func (r *ArticleREST) List(ctx context.Context, q models.ArticleQuery) (models.ArticlePage, error) {
	var env tj.Envelope[[]models.Article]
	err := r.b.do(ctx, call{op: opListArticles, method: http.MethodGet, path: articlesPath, query: listQuery(q)}, &env)
	if err != nil {
		return models.ArticlePage{}, err
	}
	p := env.Meta.Pagination
	return models.ArticlePage{
		Articles: env.Data,
		Pagination: models.Pagination{
			Page:      p.Page,
			PageSize:  p.PageSize,
			PageCount: p.PageCount,
			Total:     p.Total,
		},
	}, nil
}

// Get fetches a single article by its document id.
func (r *ArticleREST) Get(ctx context.Context, documentID string) (models.Article, error) {
	q := url.Values{paramPopulate: {"*"}}
	return r.single(ctx, call{op: opGetArticle, method: http.MethodGet, path: articlePath(documentID), query: q})
}

func (r *ArticleREST) Create(ctx context.Context, in models.ArticleInput) (models.Article, error) {
	body, err := jsonBody(articlePayload{Data: in})
	if err != nil {
		return models.Article{}, err
	}
	return r.single(ctx, call{op: opCreateArticle, method: http.MethodPost, path: articlesPath, body: body})
}

func (r *ArticleREST) Update(ctx context.Context, documentID string, in models.ArticleInput) (models.Article, error) {
	body, err := jsonBody(articlePayload{Data: in})
	if err != nil {
		return models.Article{}, err
	}
	return r.single(ctx, call{op: opUpdateArticle, method: http.MethodPut, path: articlePath(documentID), body: body})
}

func (r *ArticleREST) Delete(ctx context.Context, documentID string) error {
	return r.b.do(ctx, call{op: opDeleteArticle, method: http.MethodDelete, path: articlePath(documentID)}, nil)
}

func (r *ArticleREST) single(ctx context.Context, c call) (models.Article, error) {
	var env tj.Envelope[models.Article]
	if err := r.b.do(ctx, c, &env); err != nil {
		return models.Article{}, err
	}
	return env.Data, nil
}
