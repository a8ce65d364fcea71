package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Options enumerates the session middleware configuration explicitly:
// the signing secret, how long server-side state lives, the cookie name,
// and whether the cookie itself persists across browser restarts.
type Options struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Persistent bool
}

// Manager hands out session handles backed by a Store. The cookie carries
// only the opaque token plus an HMAC signature; all state lives server-side.
type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "sid"
	}
	if opts.TTL == 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts}
}

// Session is the per-request handle to one client's session state.
type Session struct {
	token string
	m     *Manager

	UserID   int64
	Username string
}

// GetOrCreate resolves the request's session. A valid signed cookie yields
// the existing session; a missing or tampered cookie yields a fresh empty
// one and sets the cookie on the response. Idempotent per token.
func (m *Manager) GetOrCreate(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if c, err := r.Cookie(m.opts.CookieName); err == nil {
		if token, ok := m.verify(c.Value); ok {
			state, err := m.store.Load(r.Context(), token)
			if err != nil {
				return nil, err
			}
			return &Session{token: token, m: m, UserID: state.UserID, Username: state.Username}, nil
		}
	}

	token := uuid.NewString()
	http.SetCookie(w, m.cookie(m.sign(token), m.cookieMaxAge()))
	return &Session{token: token, m: m}, nil
}

// IsAuthenticated reports whether a user is bound to the session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != 0
}

// Bind associates the session with an authenticated user. Takes effect for
// the remainder of this request and every later request bearing the token.
func (s *Session) Bind(ctx context.Context, userID int64, username string) error {
	if err := s.m.store.Bind(ctx, s.token, userID, username); err != nil {
		return err
	}
	s.UserID = userID
	s.Username = username
	return nil
}

// Destroy invalidates the token server-side and expires the cookie.
// Requests that still carry the old token are treated as anonymous.
func (s *Session) Destroy(ctx context.Context, w http.ResponseWriter) error {
	if err := s.m.store.Destroy(ctx, s.token); err != nil {
		return err
	}
	s.UserID = 0
	s.Username = ""
	http.SetCookie(w, s.m.cookie("", -1))
	return nil
}

// Flash queues a one-shot message for the next rendered page.
func (s *Session) Flash(ctx context.Context, severity Severity, message string) error {
	return s.m.store.PushFlash(ctx, s.token, severity, message)
}

// DrainFlash returns all pending messages grouped by severity and clears
// them, so each message is delivered to exactly one page.
func (s *Session) DrainFlash(ctx context.Context) (map[Severity][]string, error) {
	return s.m.store.DrainFlash(ctx, s.token)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func (m *Manager) cookieMaxAge() int {
	if m.opts.Persistent {
		return int(m.opts.TTL / time.Second)
	}
	return 0 // session cookie; server-side TTL still bounds the state
}

func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.opts.Secret)
	mac.Write([]byte(token))
	return token + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify splits a cookie value into token and signature and checks the
// signature. Tampered or malformed values are treated as no session.
func (m *Manager) verify(value string) (string, bool) {
	token, sig, found := strings.Cut(value, ".")
	if !found || token == "" {
		return "", false
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, m.opts.Secret)
	mac.Write([]byte(token))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return "", false
	}
	return token, true
}
