package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vasapolrittideah/recipe-forum/shared/auth"
)

const CookieName = "forum_session"

// Options configures the session cookie.
type Options struct {
	TTL          time.Duration
	SecureCookie bool
}

// Manager binds a Store to the session cookie. The cookie carries a signed
// token; the session record itself lives in the Store.
type Manager struct {
	store   Store
	jwtAuth auth.JWTAuthenticator
	opts    Options
}

func NewManager(store Store, jwtAuth auth.JWTAuthenticator, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}

	return &Manager{
		store:   store,
		jwtAuth: jwtAuth,
		opts:    opts,
	}
}

// Load returns the session attached to r, or nil when there is none.
// Unsigned, foreign, expired and revoked cookies all count as no session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	token, ok := m.tokenFromRequest(r)
	if !ok {
		return nil, nil
	}

	sess, err := m.store.Get(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return sess, nil
}

// Create starts a session bound to userName and sets the cookie on w.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, userName string) error {
	token := uuid.NewString()

	if err := m.store.Set(ctx, token, &Session{UserName: userName}, m.opts.TTL); err != nil {
		return err
	}

	signed, err := m.jwtAuth.SignSessionToken(token, m.opts.TTL)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Destroy removes the session attached to r, if any, and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, ok := m.tokenFromRequest(r); ok {
		if err := m.store.Destroy(ctx, token); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (m *Manager) tokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	token, err := m.jwtAuth.ParseSessionToken(cookie.Value)
	if err != nil {
		return "", false
	}

	return token, true
}
