package service

import "strings"

type RouteName string

const (
	RouteLanding       RouteName = "landing"
	RouteLogin         RouteName = "login"
	RouteRegister      RouteName = "register"
	RouteArticles      RouteName = "articles"
	RouteArticleNew    RouteName = "article_new"
	RouteArticleEdit   RouteName = "article_edit"
	RouteArticleDetail RouteName = "article_detail"
)

const (
	PathLanding  = "/"
	PathLogin    = "/login"
	PathArticles = "/articles"
)

// Route is one client-visible page.
type Route struct {
	Name    RouteName
	Pattern string // segments starting with ':' capture a parameter
	Guarded bool
}

// Routes in match order: static segments before parameters.
var Routes = []Route{
	{Name: RouteLanding, Pattern: "/"},
	{Name: RouteLogin, Pattern: "/login"},
	{Name: RouteRegister, Pattern: "/register"},
	{Name: RouteArticles, Pattern: "/articles", Guarded: true},
	{Name: RouteArticleNew, Pattern: "/articles/new", Guarded: true},
	{Name: RouteArticleEdit, Pattern: "/articles/edit/:id", Guarded: true},
	{Name: RouteArticleDetail, Pattern: "/articles/:id", Guarded: true},
}

// RouteMatch is a resolved path.
type RouteMatch struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Param returns a captured path parameter.
func (m RouteMatch) Param(name string) string {
	return m.Params[name]
}

// CleanPath drops the query string, fragment and trailing slash.
func CleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// MatchRoute finds the route serving path.
func MatchRoute(path string) (RouteMatch, bool) {
	path = CleanPath(path)
	segs := splitPath(path)
	for _, r := range Routes {
		if params, ok := matchSegments(splitPath(r.Pattern), segs); ok {
			return RouteMatch{Route: r, Path: path, Params: params}, true
		}
	}
	return RouteMatch{}, false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, want := range pattern {
		if strings.HasPrefix(want, ":") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[want[1:]] = segs[i]
			continue
		}
		if want != segs[i] {
			return nil, false
		}
	}
	return params, true
}
