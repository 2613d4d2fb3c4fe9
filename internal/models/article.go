package models

import "time"

type Article struct {
	ID            int       `json:"id"`
	DocumentID    string    `json:"documentId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CoverImageURL string    `json:"cover_image_url"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	PublishedAt   time.Time `json:"publishedAt"`
	User          *User     `json:"user,omitempty"`
	Category      *Category `json:"category,omitempty"`
}

// OwnedBy reports whether u authored the article.
func (a Article) OwnedBy(u *User) bool {
	return u != nil && a.User != nil && a.User.ID == u.ID
}

// ArticleInput is the create/update payload sent as {"data": ...}.
type ArticleInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
	Category      int    `json:"category"` // category id
}

// ArticleQuery selects one page of the article listing.
// Empty Title/Category place no constraint.
type ArticleQuery struct {
	Page     int
	PageSize int
	Title    string
	Category string
}

// Pagination describes the page a listing response belongs to.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// ArticlePage is one page of the listing.
type ArticlePage struct {
	Articles   []Article  `json:"articles"`
	Pagination Pagination `json:"pagination"`
}
