package service

import (
	"context"
	"errors"
	"time"

	"travel_journal/internal/logger"
	"travel_journal/internal/models"
	"travel_journal/internal/observability"
	"travel_journal/internal/repository"
)

const (
	eventQueueSize = 32
	frameQueueSize = 32
)

const registeredNotice = "Account created. Please log in."

// Tab is the runtime behind one open browser tab. A single goroutine owns all
// page state and drains the event queue; backend calls run on their own
// goroutines and post their completions back to the queue.
type Tab struct {
	id      string
	ctx     context.Context
	log     *logger.Logger
	metrics *observability.Collector

	session  *SessionStore
	guard    *Guard
	auth     *AuthService
	editor   *ArticleEditor
	repo     *repository.Repository
	list     *ArticleList
	debounce *Debouncer

	events chan func()
	frames chan Frame
	done   chan struct{}

	// Owned by the loop goroutine.
	nav           uint64 // bumped on every navigation
	match         RouteMatch
	flash         string
	notice        string
	categories    []models.Category
	categoriesErr error
	authView      *AuthView
	detail        *DetailView
	form          *FormView
	listAction    error
}

type tabDeps struct {
	log       *logger.Logger
	metrics   *observability.Collector
	guard     *Guard
	validator *Validator
	pageSize  int
	debounce  time.Duration
}

func newTab(ctx context.Context, id string, session *SessionStore, repo *repository.Repository, d tabDeps) *Tab {
	return &Tab{
		id:       id,
		ctx:      ctx,
		log:      logger.OrNop(d.log),
		metrics:  d.metrics,
		session:  session,
		guard:    d.guard,
		auth:     NewAuthService(d.validator, repo.Auth),
		editor:   NewArticleEditor(d.validator, repo.Articles, repo.Images),
		repo:     repo,
		list:     NewArticleList(d.pageSize),
		debounce: NewDebouncer(d.debounce),
		events:   make(chan func(), eventQueueSize),
		frames:   make(chan Frame, frameQueueSize),
		done:     make(chan struct{}),
	}
}

func (t *Tab) ID() string { return t.id }

// Frames yields the frames to push to the browser. It is closed when the tab stops.
func (t *Tab) Frames() <-chan Frame { return t.frames }

// Done is closed once the loop has exited.
func (t *Tab) Done() <-chan struct{} { return t.done }

// start runs the loop until ctx is cancelled, first landing on path.
func (t *Tab) start(path string) {
	t.metrics.TabOpened()
	t.log.Infow("tab_opened", "tab", t.id, "path", path)
	t.post(func() { t.navigate(path, false) })
	go t.run()
}

func (t *Tab) run() {
	defer func() {
		t.debounce.Stop()
		close(t.frames)
		close(t.done)
		t.metrics.TabClosed()
		t.log.Infow("tab_closed", "tab", t.id)
	}()
	for {
		select {
		case <-t.ctx.Done():
			return
		case fn := <-t.events:
			fn()
		}
	}
}

// post queues fn for the loop. It gives up once the tab is gone.
func (t *Tab) post(fn func()) {
	select {
	case t.events <- fn:
	case <-t.ctx.Done():
	}
}

func (t *Tab) emit(f Frame) {
	select {
	case t.frames <- f:
	case <-t.ctx.Done():
	}
}

func (t *Tab) render() {
	t.emit(Frame{Kind: FrameView, Path: t.match.Path, View: t.view()})
}

func (t *Tab) on(routes ...RouteName) bool {
	for _, r := range routes {
		if t.match.Route.Name == r {
			return true
		}
	}
	return false
}

// runAsync calls fn off the loop and hands its result to done on the loop,
// unless the user has navigated away in the meantime.
func runAsync[T any](t *Tab, op string, fn func(context.Context) (T, error), done func(T, error)) {
	nav := t.nav
	go func() {
		v, err := fn(t.ctx)
		t.post(func() {
			if nav != t.nav {
				t.log.Debugw("completion dropped", "tab", t.id, "op", op)
				return
			}
			if err != nil {
				t.log.Warnw("backend call failed", "tab", t.id, "op", op, "error", err)
			}
			done(v, err)
			t.render()
		})
	}()
}

// Navigate moves the tab to path, subject to the route guard.
func (t *Tab) Navigate(path string) {
	t.post(func() { t.navigate(path, false) })
}

// navigate lands on path. With announce set, or when the guard redirected,
// the browser is told to update its location first.
func (t *Tab) navigate(path string, announce bool) {
	d := t.guard.Resolve(path, t.session.Get())
	t.nav++
	t.debounce.Stop()
	t.match = d.Match
	t.notice, t.flash = t.flash, ""
	t.authView, t.detail, t.form, t.listAction = nil, nil, nil, nil

	if d.Redirected {
		t.log.Debugw("navigation redirected", "tab", t.id, "requested", d.Requested, "to", d.Match.Path)
	}
	if announce || d.Redirected {
		t.emit(Frame{Kind: FrameRedirect, Path: d.Match.Path})
	}
	t.mount()
	t.render()
}

func (t *Tab) mount() {
	switch t.match.Route.Name {
	case RouteLogin, RouteRegister:
		t.authView = &AuthView{}
	case RouteArticles:
		t.list.DiscardDraft()
		t.fetch(t.list.Refresh())
		t.loadCategories()
	case RouteArticleDetail:
		t.mountDetail(t.match.Param("id"))
	case RouteArticleNew:
		t.form = &FormView{Mode: FormCreate}
		t.loadCategories()
	case RouteArticleEdit:
		t.mountEdit(t.match.Param("id"))
	}
}

func (t *Tab) mountDetail(id string) {
	t.detail = &DetailView{Loading: true}
	runAsync(t, "article.get", func(ctx context.Context) (models.Article, error) {
		return t.repo.Articles.Get(ctx, id)
	}, func(a models.Article, err error) {
		t.detail.Loading = false
		if err != nil {
			t.detail.Error = errorMessage(err)
			return
		}
		t.detail.Article = &a
		t.detail.CanEdit = a.OwnedBy(t.session.Get().User)
	})
}

func (t *Tab) mountEdit(id string) {
	t.form = &FormView{Mode: FormEdit, DocumentID: id, Loading: true}
	t.loadCategories()
	runAsync(t, "article.get", func(ctx context.Context) (models.Article, error) {
		return t.repo.Articles.Get(ctx, id)
	}, func(a models.Article, err error) {
		t.form.Loading = false
		if err != nil {
			t.form.Error = errorMessage(err)
			return
		}
		t.form.Values = FormFromArticle(a)
	})
}

// loadCategories fetches the category list once per tab.
func (t *Tab) loadCategories() {
	if t.categories != nil {
		return
	}
	t.categoriesErr = nil
	runAsync(t, "categories.list", func(ctx context.Context) ([]models.Category, error) {
		return t.repo.Categories.List(ctx)
	}, func(cs []models.Category, err error) {
		if err != nil {
			t.categoriesErr = err
			return
		}
		if cs == nil {
			cs = []models.Category{}
		}
		t.categories = cs
	})
}

// fetch executes a list request. Its completion is checked against the list
// itself, which knows whether the request is still current.
func (t *Tab) fetch(req FetchRequest) {
	go func() {
		page, err := t.repo.Articles.List(t.ctx, req.Query())
		t.post(func() {
			if !t.list.Apply(req, page, err) {
				t.metrics.StaleDiscarded()
				t.log.Debugw("stale list response discarded", "tab", t.id, "page", req.Page, "generation", req.Generation)
				return
			}
			if err != nil {
				t.log.Warnw("article listing failed", "tab", t.id, "page", req.Page, "error", err)
			}
			if t.on(RouteArticles) {
				t.render()
			}
		})
	}()
}

// Login exchanges credentials for a session and opens the article list.
func (t *Tab) Login(in LoginInput) {
	t.post(func() {
		if !t.on(RouteLogin) {
			return
		}
		if errs := t.auth.ValidateLogin(in); len(errs) > 0 {
			t.authView = &AuthView{Errors: errs}
			t.render()
			return
		}
		t.authView = &AuthView{Submitting: true}
		t.render()
		runAsync(t, "auth.login", func(ctx context.Context) (models.AuthResponse, error) {
			return t.auth.Login(ctx, in)
		}, func(res models.AuthResponse, err error) {
			if err != nil {
				t.authView = &AuthView{Error: errorMessage(err)}
				return
			}
			t.session.Set(res.User, res.JWT)
			t.log.Infow("logged in", "tab", t.id, "user", res.User.ID)
			t.navigate(PathArticles, true)
		})
	})
}

// Register creates an account and sends the user to the login page.
func (t *Tab) Register(in RegisterInput) {
	t.post(func() {
		if !t.on(RouteRegister) {
			return
		}
		if errs := t.auth.ValidateRegister(in); len(errs) > 0 {
			t.authView = &AuthView{Errors: errs}
			t.render()
			return
		}
		t.authView = &AuthView{Submitting: true}
		t.render()
		runAsync(t, "auth.register", func(ctx context.Context) (models.AuthResponse, error) {
			return t.auth.Register(ctx, in)
		}, func(res models.AuthResponse, err error) {
			if err != nil {
				t.authView = &AuthView{Error: errorMessage(err)}
				return
			}
			t.log.Infow("registered", "tab", t.id, "user", res.User.ID)
			t.flash = registeredNotice
			t.navigate(PathLogin, true)
		})
	})
}

// Logout clears the session and returns to the login page.
func (t *Tab) Logout() {
	t.post(func() {
		t.session.Clear()
		t.navigate(PathLogin, true)
	})
}

// Search records typed input and commits it once typing pauses.
func (t *Tab) Search(q string) {
	t.post(func() {
		if !t.on(RouteArticles) {
			return
		}
		t.list.SetDraft(q)
		nav := t.nav
		t.debounce.Trigger(func() {
			t.post(func() {
				if nav == t.nav {
					t.commitSearch()
				}
			})
		})
		t.render()
	})
}

func (t *Tab) commitSearch() {
	req, ok := t.list.CommitDraft()
	if ok {
		t.fetch(req)
	}
	t.render()
}

// SelectCategory filters by category name, "" for all.
func (t *Tab) SelectCategory(name string) {
	t.post(func() {
		if !t.on(RouteArticles) {
			return
		}
		if req, ok := t.list.SetCategory(name); ok {
			t.fetch(req)
			t.render()
		}
	})
}

// LoadMore appends the next page, if there is one and nothing is loading.
func (t *Tab) LoadMore() {
	t.post(func() {
		if !t.on(RouteArticles) {
			return
		}
		if req, ok := t.list.LoadMore(); ok {
			t.fetch(req)
			t.render()
		}
	})
}

// Refresh refetches the list from page 1, e.g. to retry after an error.
func (t *Tab) Refresh() {
	t.post(func() {
		if !t.on(RouteArticles) {
			return
		}
		t.listAction = nil
		t.fetch(t.list.Refresh())
		if t.categoriesErr != nil {
			t.loadCategories()
		}
		t.render()
	})
}

// DeleteArticle deletes from the list or the detail page. The list drops the
// article at once and then refetches every page it had loaded.
func (t *Tab) DeleteArticle(documentID string) {
	t.post(func() {
		switch {
		case t.on(RouteArticles):
			t.listAction = nil
		case t.on(RouteArticleDetail):
			t.detail.Deleting = true
			t.detail.Error = ""
		default:
			return
		}
		t.render()
		runAsync(t, "article.delete", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, t.repo.Articles.Delete(ctx, documentID)
		}, func(_ struct{}, err error) {
			if err != nil {
				if t.on(RouteArticleDetail) {
					t.detail.Deleting = false
					t.detail.Error = errorMessage(err)
				} else {
					t.listAction = err
				}
				return
			}
			t.log.Infow("article deleted", "tab", t.id, "article", documentID)
			t.list.Remove(documentID)
			if t.on(RouteArticleDetail) {
				t.navigate(PathArticles, true)
				return
			}
			t.fetch(t.list.Reload())
		})
	})
}

// SubmitArticle validates the form, uploads its image and saves the article.
func (t *Tab) SubmitArticle(f ArticleForm) {
	t.post(func() {
		if !t.on(RouteArticleNew, RouteArticleEdit) || t.form.Submitting {
			return
		}
		f.DocumentID = t.form.DocumentID
		t.form.Values = f
		t.form.Values.Image = nil
		t.form.ImageName = ""
		if f.Image != nil {
			t.form.ImageName = f.Image.Filename
		}
		t.form.Error, t.form.UploadError = "", ""

		if errs := t.editor.Validate(f); len(errs) > 0 {
			t.form.Errors = errs
			t.render()
			return
		}
		t.form.Errors = nil
		t.form.Submitting = true
		t.render()

		runAsync(t, "article.submit", func(ctx context.Context) (models.Article, error) {
			return t.editor.Submit(ctx, f)
		}, func(a models.Article, err error) {
			t.form.Submitting = false
			if err != nil {
				var se *SubmitError
				if errors.As(err, &se) && se.Stage == StageUpload {
					t.form.UploadError = errorMessage(se.Err)
				} else if se != nil {
					t.form.Error = errorMessage(se.Err)
				} else {
					t.form.Error = errorMessage(err)
				}
				return
			}
			t.log.Infow("article saved", "tab", t.id, "article", a.DocumentID, "mode", t.form.Mode)
			t.navigate(PathArticles, true)
		})
	})
}

func (t *Tab) view() *View {
	sess := t.session.Get()
	v := &View{
		Route:  t.match.Route.Name,
		Path:   t.match.Path,
		User:   sess.User,
		Notice: t.notice,
	}
	switch t.match.Route.Name {
	case RouteLogin, RouteRegister:
		if t.authView != nil {
			a := *t.authView
			v.Auth = &a
		}
	case RouteArticles:
		lv := t.list.Snapshot()
		lv.Categories = t.categories
		if t.categoriesErr != nil {
			lv.CategoriesError = errorMessage(t.categoriesErr)
		}
		lv.CanCreate = t.guard.Authenticated(sess)
		if t.listAction != nil {
			lv.ActionError = errorMessage(t.listAction)
		}
		v.List = &lv
	case RouteArticleDetail:
		if t.detail != nil {
			d := *t.detail
			if d.Article != nil {
				a := *d.Article
				d.Article = &a
			}
			v.Detail = &d
		}
	case RouteArticleNew, RouteArticleEdit:
		if t.form != nil {
			f := *t.form
			f.Categories = t.categories
			v.Form = &f
		}
	}
	return v
}
