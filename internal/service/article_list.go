package service

import (
	"travel_journal/internal/models"
)

// DefaultPageSize matches the card grid of the listing page.
const DefaultPageSize = 6

// maxReloadSize stays within the backend's default pageSize limit.
const maxReloadSize = 100

// ArticleFilter narrows the listing. Empty fields place no constraint.
type ArticleFilter struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type ListStatus string

const (
	ListIdle    ListStatus = "idle"
	ListLoading ListStatus = "loading"
	ListLoaded  ListStatus = "loaded"
	ListFailed  ListStatus = "failed"
)

// FetchRequest is one listing call issued by ArticleList. Its Generation and
// Page identify the state it was issued for. A Span above one asks for the
// first Span pages in a single call.
type FetchRequest struct {
	Generation uint64
	Page       int
	PageSize   int
	Span       int
	Filter     ArticleFilter
	Append     bool
}

func (r FetchRequest) Query() models.ArticleQuery {
	return models.ArticleQuery{
		Page:     r.Page,
		PageSize: r.PageSize,
		Title:    r.Filter.Title,
		Category: r.Filter.Category,
	}
}

// ArticleList is the state machine behind the paginated, filterable listing.
// It performs no I/O: callers execute the FetchRequests it returns and hand
// the results back to Apply. Not safe for concurrent use; the tab loop owns it.
//
//	Idle -> Loading(page 1) -> Loaded -> Loading(page n+1, appending) -> Loaded
//	any filter change: new generation, list cleared, Loading(page 1)
type ArticleList struct {
	pageSize int

	filter    ArticleFilter
	draft     string
	searching bool

	status     ListStatus
	appending  bool
	page       int // page of the last issued request
	generation uint64
	articles   []models.Article
	pagination models.Pagination
	err        error
}

func NewArticleList(pageSize int) *ArticleList {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ArticleList{pageSize: pageSize, status: ListIdle}
}

func (l *ArticleList) Status() ListStatus            { return l.status }
func (l *ArticleList) Filter() ArticleFilter         { return l.filter }
func (l *ArticleList) Draft() string                 { return l.draft }
func (l *ArticleList) Page() int                     { return l.page }
func (l *ArticleList) Pagination() models.Pagination { return l.pagination }
func (l *ArticleList) Err() error                    { return l.err }

// Articles returns a copy of the accumulated list.
func (l *ArticleList) Articles() []models.Article {
	out := make([]models.Article, len(l.articles))
	copy(out, l.articles)
	return out
}

// HasMore reports whether the backend has pages beyond the last one loaded.
func (l *ArticleList) HasMore() bool {
	return l.status == ListLoaded && l.page < l.pagination.PageCount
}

// restart begins a new fetch sequence under the current filter. With reset
// unset the current articles stay on screen until page 1 replaces them.
func (l *ArticleList) restart(reset bool) FetchRequest {
	l.generation++
	l.page = 1
	if reset {
		l.articles = nil
		l.pagination = models.Pagination{}
	}
	l.status = ListLoading
	l.appending = false
	l.err = nil
	return l.request(false)
}

func (l *ArticleList) request(appending bool) FetchRequest {
	return FetchRequest{
		Generation: l.generation,
		Page:       l.page,
		PageSize:   l.pageSize,
		Filter:     l.filter,
		Append:     appending,
	}
}

// Refresh refetches page 1 under the committed filter, e.g. to retry a failed
// load. Search input still waiting to be committed is kept.
func (l *ArticleList) Refresh() FetchRequest {
	return l.restart(false)
}

// Reload refetches every page loaded so far in one call, so the user keeps
// the depth they scrolled to. Used after a delete.
func (l *ArticleList) Reload() FetchRequest {
	span := l.loadedPages()
	req := l.restart(false)
	if span > 1 {
		req.Span = span
		req.PageSize = l.pageSize * span
	}
	return req
}

func (l *ArticleList) loadedPages() int {
	n := 1
	switch {
	case l.status == ListLoaded:
		n = l.page
	case l.appending:
		n = l.page - 1
	}
	return max(min(n, maxReloadSize/l.pageSize), 1)
}

// DiscardDraft drops uncommitted search input, as when the page is mounted afresh.
func (l *ArticleList) DiscardDraft() {
	l.draft = l.filter.Title
	l.searching = false
}

// SetDraft records raw search input without committing it.
func (l *ArticleList) SetDraft(q string) {
	l.draft = q
	l.searching = q != l.filter.Title
}

// CommitDraft makes the draft the active title filter. It returns false, and
// no request, when the filter would not change.
func (l *ArticleList) CommitDraft() (FetchRequest, bool) {
	l.searching = false
	if l.draft == l.filter.Title {
		return FetchRequest{}, false
	}
	l.filter.Title = l.draft
	return l.restart(true), true
}

// SetCategory changes the category filter ("" for all categories).
func (l *ArticleList) SetCategory(name string) (FetchRequest, bool) {
	if name == l.filter.Category {
		return FetchRequest{}, false
	}
	l.filter.Category = name
	return l.restart(true), true
}

// LoadMore requests the next page. Only one page is ever in flight, so pages
// are requested and appended in strictly increasing order.
func (l *ArticleList) LoadMore() (FetchRequest, bool) {
	if !l.HasMore() {
		return FetchRequest{}, false
	}
	l.page++
	l.status = ListLoading
	l.appending = true
	l.err = nil
	return l.request(true), true
}

// Apply folds a response into the list. It returns false when the response is
// stale (issued for an older generation or another page) and was discarded.
func (l *ArticleList) Apply(req FetchRequest, page models.ArticlePage, err error) bool {
	if l.status != ListLoading || req.Generation != l.generation || req.Page != l.page {
		return false
	}
	l.appending = false
	if err != nil {
		l.err = err
		if req.Append {
			// keep what we have; the user can ask for the page again
			l.page--
			l.status = ListLoaded
		} else {
			l.articles = nil
			l.pagination = models.Pagination{}
			l.status = ListFailed
		}
		return true
	}

	if req.Append {
		l.articles = append(l.articles, page.Articles...)
	} else {
		l.articles = append([]models.Article(nil), page.Articles...)
	}
	l.pagination = page.Pagination
	if req.Span > 1 {
		l.spread(req.Span)
	}
	l.status = ListLoaded
	return true
}

// spread restates a multi-page response in regular page units so LoadMore
// continues right after the last article received.
func (l *ArticleList) spread(span int) {
	total := l.pagination.Total
	pageCount := (total + l.pageSize - 1) / l.pageSize
	l.page = max(min(span, pageCount), 1)
	l.pagination = models.Pagination{Page: l.page, PageSize: l.pageSize, PageCount: pageCount, Total: total}
}

// Remove drops an article from the displayed list, e.g. right after it was deleted.
func (l *ArticleList) Remove(documentID string) bool {
	for i, a := range l.articles {
		if a.DocumentID != documentID {
			continue
		}
		l.articles = append(l.articles[:i:i], l.articles[i+1:]...)
		if l.pagination.Total > 0 {
			l.pagination.Total--
		}
		return true
	}
	return false
}

// Snapshot renders the list state for the view.
func (l *ArticleList) Snapshot() ListView {
	v := ListView{
		Articles:   l.Articles(),
		Pagination: l.pagination,
		Filter:     l.filter,
		Draft:      l.draft,
		Searching:  l.searching,
		Status:     l.status,
		Appending:  l.appending,
		HasMore:    l.HasMore(),
	}
	if l.err != nil {
		v.Error = errorMessage(l.err)
	}
	return v
}
