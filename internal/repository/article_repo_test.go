package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	tj "travel_journal"
	"travel_journal/internal/models"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name       string
		q          models.ArticleQuery
		wantTitle  string
		wantCat    string
		hasTitle   bool
		hasCatName bool
	}{
		{name: "no filters", q: models.ArticleQuery{Page: 1, PageSize: 6}},
		{name: "title only", q: models.ArticleQuery{Page: 2, PageSize: 6, Title: "Paris"}, wantTitle: "Paris", hasTitle: true},
		{name: "both", q: models.ArticleQuery{Page: 1, PageSize: 6, Title: "bali", Category: "Asia"}, wantTitle: "bali", wantCat: "Asia", hasTitle: true, hasCatName: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := listQuery(tt.q)
			if _, ok := v[paramTitleFilter]; ok != tt.hasTitle {
				t.Fatalf("title param present=%v, want %v", ok, tt.hasTitle)
			}
			if _, ok := v[paramCategoryFilter]; ok != tt.hasCatName {
				t.Fatalf("category param present=%v, want %v", ok, tt.hasCatName)
			}
			if v.Get(paramTitleFilter) != tt.wantTitle || v.Get(paramCategoryFilter) != tt.wantCat {
				t.Fatalf("filters = %v", v)
			}
			if v.Get(paramPopulate) != "*" {
				t.Fatalf("populate missing: %v", v)
			}
		})
	}
}

func TestArticleREST_List(t *testing.T) {
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/articles" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get(paramPage) != "2" || q.Get(paramPageSize) != "6" || q.Get(paramTitleFilter) != "par" {
			t.Errorf("query = %v", q)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": 1, "documentId": "a1", "title": "Paris in spring", "cover_image_url": "https://img/1.jpg",
					"user": map[string]any{"id": 3, "username": "bob"}, "category": map[string]any{"id": 2, "name": "Europe"}},
				{"id": 2, "documentId": "a2", "title": "Paris by night"},
			},
			"meta": map[string]any{"pagination": map[string]any{"page": 2, "pageSize": 6, "pageCount": 3, "total": 14}},
		})
	})

	page, err := repo.Articles.List(context.Background(), models.ArticleQuery{Page: 2, PageSize: 6, Title: "par"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Articles) != 2 || page.Articles[0].DocumentID != "a1" || page.Articles[0].User.Username != "bob" {
		t.Fatalf("articles = %+v", page.Articles)
	}
	if page.Articles[0].Category == nil || page.Articles[0].Category.Name != "Europe" {
		t.Fatalf("category not decoded: %+v", page.Articles[0])
	}
	want := models.Pagination{Page: 2, PageSize: 6, PageCount: 3, Total: 14}
	if page.Pagination != want {
		t.Fatalf("pagination = %+v, want %+v", page.Pagination, want)
	}
}

func TestArticleREST_GetNotFound(t *testing.T) {
	repo := newTestRepo(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/articles/missing" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeBackendError(w, http.StatusNotFound, "NotFoundError", "Not Found")
	})

	_, err := repo.Articles.Get(context.Background(), "missing")
	if !errors.Is(err, tj.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestArticleREST_CreateSendsDataEnvelope(t *testing.T) {
	var got articlePayload
	var method string
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if r.Header.Get("Content-Type") != contentTypeJSON {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": 9, "documentId": "new1", "title": got.Data.Title}})
	})

	in := models.ArticleInput{Title: "Kyoto", Description: "Temples and tea", CoverImageURL: "https://img/k.jpg", Category: 4}
	a, err := repo.Articles.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if method != http.MethodPost || got.Data != in {
		t.Fatalf("method=%s payload=%+v", method, got)
	}
	if a.DocumentID != "new1" || a.Title != "Kyoto" {
		t.Fatalf("article = %+v", a)
	}
}

func TestArticleREST_UpdateForbidden(t *testing.T) {
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/articles/doc1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		writeBackendError(w, http.StatusForbidden, "ForbiddenError", "Forbidden")
	})

	_, err := repo.Articles.Update(context.Background(), "doc1", models.ArticleInput{Title: "x"})
	if !errors.Is(err, tj.ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}
}

func TestArticleREST_Delete(t *testing.T) {
	var method, path string
	repo := newTestRepo(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := repo.Articles.Delete(context.Background(), "doc1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if method != http.MethodDelete || path != "/api/articles/doc1" {
		t.Fatalf("%s %s", method, path)
	}
}
