package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(NewMemoryStore(), Options{Secret: []byte("test-secret")})
}

// getOrCreate drives Manager.GetOrCreate with an optional cookie from a
// previous response, the way a browser would.
func getOrCreate(t *testing.T, m *Manager, cookie *http.Cookie) (*Session, *httptest.ResponseRecorder) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	sess, err := m.GetOrCreate(w, r)
	require.NoError(t, err)
	return sess, w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestGetOrCreate_NewSessionIsAnonymous(t *testing.T) {
	m := newTestManager()

	sess, w := getOrCreate(t, m, nil)

	assert.False(t, sess.IsAuthenticated())
	c := sessionCookie(t, w)
	assert.True(t, c.HttpOnly)
}

func TestBindSurvivesAcrossRequests(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, w := getOrCreate(t, m, nil)
	require.NoError(t, sess.Bind(ctx, 1, "alice"))
	assert.True(t, sess.IsAuthenticated())

	again, _ := getOrCreate(t, m, sessionCookie(t, w))
	assert.True(t, again.IsAuthenticated())
	assert.Equal(t, int64(1), again.UserID)
	assert.Equal(t, "alice", again.Username)
}

func TestDestroyMakesTokenAnonymous(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, w := getOrCreate(t, m, nil)
	require.NoError(t, sess.Bind(ctx, 1, "alice"))
	cookie := sessionCookie(t, w)

	require.NoError(t, sess.Destroy(ctx, httptest.NewRecorder()))

	again, _ := getOrCreate(t, m, cookie)
	assert.False(t, again.IsAuthenticated())
}

func TestTamperedCookieYieldsFreshSession(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, w := getOrCreate(t, m, nil)
	require.NoError(t, sess.Bind(ctx, 1, "alice"))

	forged := sessionCookie(t, w)
	forged.Value = forged.Value + "x"

	again, w2 := getOrCreate(t, m, forged)
	assert.False(t, again.IsAuthenticated())
	// a replacement cookie must be issued
	assert.NotEmpty(t, sessionCookie(t, w2).Value)
}

func TestFlashIsDeliveredExactlyOnce(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, w := getOrCreate(t, m, nil)
	require.NoError(t, sess.Flash(ctx, SeveritySuccess, "saved"))
	require.NoError(t, sess.Flash(ctx, SeverityError, "boom"))

	cookie := sessionCookie(t, w)
	first, _ := getOrCreate(t, m, cookie)
	msgs, err := first.DrainFlash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"saved"}, msgs[SeveritySuccess])
	assert.Equal(t, []string{"boom"}, msgs[SeverityError])

	second, _ := getOrCreate(t, m, cookie)
	msgs, err = second.DrainFlash(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestFlashPreservesOrderWithinSeverity(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess, _ := getOrCreate(t, m, nil)
	require.NoError(t, sess.Flash(ctx, SeverityWarning, "first"))
	require.NoError(t, sess.Flash(ctx, SeverityWarning, "second"))

	msgs, err := sess.DrainFlash(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, msgs[SeverityWarning])
}
