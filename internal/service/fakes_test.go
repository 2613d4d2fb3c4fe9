package service

import (
	"context"
	"strings"
	"sync"

	tj "travel_journal"
	"travel_journal/internal/models"
	"travel_journal/internal/repository"
)

// fakeBackend is an in-memory stand-in for every backend resource.
type fakeBackend struct {
	mu sync.Mutex

	articles   []models.Article
	categories []models.Category
	users      map[string]models.AuthResponse // by identifier

	// listGate, when set, is consulted before answering a listing.
	listGate  func(q models.ArticleQuery)
	uploadErr error

	queries  []models.ArticleQuery
	created  []models.ArticleInput
	updated  map[string]models.ArticleInput
	deleted  []string
	uploads  []models.ImageFile
	authCall int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{updated: map[string]models.ArticleInput{}, users: map[string]models.AuthResponse{}}
}

func (f *fakeBackend) repo(repository.TokenSource) *repository.Repository {
	return &repository.Repository{
		Auth:       fakeAuth{f},
		Articles:   fakeArticles{f},
		Categories: fakeCategories{f},
		Images:     fakeImages{f},
	}
}

func (f *fakeBackend) listQueries() []models.ArticleQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ArticleQuery(nil), f.queries...)
}

func (f *fakeBackend) counts() (created, uploads, auth int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created), len(f.uploads), f.authCall
}

type fakeAuth struct{ f *fakeBackend }

func (a fakeAuth) Register(_ context.Context, email, username, _ string) (models.AuthResponse, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.authCall++
	if _, taken := a.f.users[email]; taken {
		return models.AuthResponse{}, &tj.Error{Kind: tj.ErrAuth, Op: "auth.register", Status: 400, Message: "Email or Username are already taken"}
	}
	res := models.AuthResponse{JWT: "tok-" + username, User: models.User{ID: len(a.f.users) + 1, Username: username, Email: email}}
	a.f.users[email] = res
	return res, nil
}

func (a fakeAuth) Login(_ context.Context, identifier, _ string) (models.AuthResponse, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.authCall++
	res, ok := a.f.users[identifier]
	if !ok {
		return models.AuthResponse{}, &tj.Error{Kind: tj.ErrAuth, Op: "auth.login", Status: 400, Message: "Invalid identifier or password"}
	}
	return res, nil
}

type fakeArticles struct{ f *fakeBackend }

func (r fakeArticles) List(_ context.Context, q models.ArticleQuery) (models.ArticlePage, error) {
	r.f.mu.Lock()
	r.f.queries = append(r.f.queries, q)
	gate := r.f.listGate
	r.f.mu.Unlock()
	if gate != nil {
		gate(q)
	}

	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var matched []models.Article
	for _, a := range r.f.articles {
		if q.Title != "" && !containsFold(a.Title, q.Title) {
			continue
		}
		if q.Category != "" && (a.Category == nil || !containsFold(a.Category.Name, q.Category)) {
			continue
		}
		matched = append(matched, a)
	}
	size := q.PageSize
	pageCount := (len(matched) + size - 1) / size
	start := (q.Page - 1) * size
	end := min(start+size, len(matched))
	var out []models.Article
	if start < len(matched) {
		out = append(out, matched[start:end]...)
	}
	return models.ArticlePage{
		Articles:   out,
		Pagination: models.Pagination{Page: q.Page, PageSize: size, PageCount: pageCount, Total: len(matched)},
	}, nil
}

func (r fakeArticles) Get(_ context.Context, id string) (models.Article, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, a := range r.f.articles {
		if a.DocumentID == id {
			return a, nil
		}
	}
	return models.Article{}, &tj.Error{Kind: tj.ErrNotFound, Op: "articles.get", Status: 404, Message: "Not Found"}
}

func (r fakeArticles) Create(_ context.Context, in models.ArticleInput) (models.Article, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.created = append(r.f.created, in)
	return models.Article{DocumentID: "new", Title: in.Title}, nil
}

func (r fakeArticles) Update(_ context.Context, id string, in models.ArticleInput) (models.Article, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.updated[id] = in
	return models.Article{DocumentID: id, Title: in.Title}, nil
}

func (r fakeArticles) Delete(_ context.Context, id string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for i, a := range r.f.articles {
		if a.DocumentID == id {
			r.f.articles = append(r.f.articles[:i], r.f.articles[i+1:]...)
			r.f.deleted = append(r.f.deleted, id)
			return nil
		}
	}
	return &tj.Error{Kind: tj.ErrNotFound, Op: "articles.delete", Status: 404, Message: "Not Found"}
}

type fakeCategories struct{ f *fakeBackend }

func (r fakeCategories) List(context.Context) ([]models.Category, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return append([]models.Category(nil), r.f.categories...), nil
}

type fakeImages struct{ f *fakeBackend }

func (r fakeImages) Upload(_ context.Context, img models.ImageFile) (models.UploadedFile, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.uploads = append(r.f.uploads, img)
	if r.f.uploadErr != nil {
		return models.UploadedFile{}, r.f.uploadErr
	}
	return models.UploadedFile{ID: len(r.f.uploads), Name: img.Filename, URL: "https://cdn.example.com/" + img.Filename}, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

var (
	europe = &models.Category{ID: 1, DocumentID: "cat-eu", Name: "Europe"}
	asia   = &models.Category{ID: 2, DocumentID: "cat-as", Name: "Asia"}
	alice  = models.User{ID: 7, Username: "alice", Email: "alice@example.com"}
)

func sampleArticles() []models.Article {
	return []models.Article{
		{ID: 1, DocumentID: "a1", Title: "Paris in spring", Category: europe, User: &alice},
		{ID: 2, DocumentID: "a2", Title: "Kyoto temples", Category: asia},
		{ID: 3, DocumentID: "a3", Title: "Lisbon trams", Category: europe},
		{ID: 4, DocumentID: "a4", Title: "Parisian cafes", Category: europe},
		{ID: 5, DocumentID: "a5", Title: "Hanoi street food", Category: asia},
	}
}
