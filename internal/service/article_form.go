package service

import (
	"context"
	"fmt"

	"travel_journal/internal/models"
	"travel_journal/internal/repository"
)

// ArticleForm is the create/edit form. DocumentID is set when editing.
type ArticleForm struct {
	DocumentID    string            `json:"-"`
	Title         string            `json:"title" validate:"min=3"`
	Description   string            `json:"description" validate:"min=10"`
	Category      int               `json:"category" validate:"gt=0"`
	CoverImageURL string            `json:"cover_image_url"`
	Image         *models.ImageFile `json:"image,omitempty"`
}

// FormFromArticle prefills the edit form.
func FormFromArticle(a models.Article) ArticleForm {
	f := ArticleForm{
		DocumentID:    a.DocumentID,
		Title:         a.Title,
		Description:   a.Description,
		CoverImageURL: a.CoverImageURL,
	}
	if a.Category != nil {
		f.Category = a.Category.ID
	}
	return f
}

func (f ArticleForm) hasImage() bool {
	return f.Image != nil && len(f.Image.Data) > 0
}

func (f ArticleForm) input() models.ArticleInput {
	return models.ArticleInput{
		Title:         f.Title,
		Description:   f.Description,
		CoverImageURL: f.CoverImageURL,
		Category:      f.Category,
	}
}

type SubmitStage string

const (
	StageUpload SubmitStage = "upload"
	StageSubmit SubmitStage = "submit"
)

// SubmitError tells which step of a submission failed.
type SubmitError struct {
	Stage SubmitStage
	Err   error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// ArticleEditor validates and submits article forms.
type ArticleEditor struct {
	validator *Validator
	articles  repository.ArticleRepo
	images    repository.ImageRepo
}

func NewArticleEditor(v *Validator, articles repository.ArticleRepo, images repository.ImageRepo) *ArticleEditor {
	return &ArticleEditor{validator: v, articles: articles, images: images}
}

// Validate checks the form locally. A cover is required: either a freshly
// selected file or an absolute URL already hosted.
func (e *ArticleEditor) Validate(f ArticleForm) FieldErrors {
	errs := e.validator.Struct(f)
	if !f.hasImage() {
		errs = errs.merge(e.validator.Var("cover_image_url", f.CoverImageURL, "required,url"))
	}
	return errs
}

// Submit uploads the selected image, if any, then creates or updates the
// article. Nothing is sent when validation fails; nothing is saved when the
// upload fails.
func (e *ArticleEditor) Submit(ctx context.Context, f ArticleForm) (models.Article, error) {
	if err := e.Validate(f).asError("article.submit"); err != nil {
		return models.Article{}, err
	}

	if f.hasImage() {
		up, err := e.images.Upload(ctx, *f.Image)
		if err != nil {
			return models.Article{}, &SubmitError{Stage: StageUpload, Err: err}
		}
		f.CoverImageURL = up.URL
		f.Image = nil
	}

	var (
		a   models.Article
		err error
	)
	if f.DocumentID != "" {
		a, err = e.articles.Update(ctx, f.DocumentID, f.input())
	} else {
		a, err = e.articles.Create(ctx, f.input())
	}
	if err != nil {
		return models.Article{}, &SubmitError{Stage: StageSubmit, Err: err}
	}
	return a, nil
}
