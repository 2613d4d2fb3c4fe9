package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decision is the outcome of guarding a navigation.
type Decision struct {
	Match      RouteMatch
	Requested  string
	Redirected bool
}

// Guard decides which page a navigation lands on. It only reads the session.
type Guard struct {
	now    func() time.Time
	parser *jwt.Parser
}

func NewGuard() *Guard {
	return &Guard{now: time.Now, parser: jwt.NewParser()}
}

// Authenticated reports whether s carries a user and a usable token.
// A JWT whose exp claim has passed is treated like no token at all; the
// signature is not checked here, the backend does that on every call.
func (g *Guard) Authenticated(s Session) bool {
	if s.User == nil || s.Token == "" {
		return false
	}
	return !g.expired(s.Token)
}

func (g *Guard) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := g.parser.ParseUnverified(token, &claims); err != nil {
		// opaque token
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(g.now())
}

// Resolve maps a requested path to the page to render.
// Guarded pages without a session resolve to the login page; unknown paths to the landing page.
func (g *Guard) Resolve(path string, s Session) Decision {
	m, ok := MatchRoute(path)
	if !ok {
		landing, _ := MatchRoute(PathLanding)
		return Decision{Match: landing, Requested: path, Redirected: true}
	}
	if m.Route.Guarded && !g.Authenticated(s) {
		login, _ := MatchRoute(PathLogin)
		return Decision{Match: login, Requested: path, Redirected: true}
	}
	return Decision{Match: m, Requested: path}
}
