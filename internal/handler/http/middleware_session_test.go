package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/cryptpix/internal/logger"
	"github.com/MKhiriev/cryptpix/internal/service"
	"github.com/MKhiriev/cryptpix/internal/utils"
)

func sessionProbe(seen *string) http.Handler {
	return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		*seen, _ = utils.GetSessionIDFromContext(r.Context())
	})
}

func TestWithSession_IssuesCookie(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), logger.Nop())

	var seen string
	rec := httptest.NewRecorder()
	h.withSession(sessionProbe(&seen)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, sessionCookieName, c.Name)
	assert.Equal(t, seen, c.Value)
	assert.True(t, h.ids.Valid(c.Value))
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.False(t, c.Secure, "plain HTTP must not mark the cookie secure")
}

func TestWithSession_ReusesValidCookie(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie())

	var seen string
	rec := httptest.NewRecorder()
	h.withSession(sessionProbe(&seen)).ServeHTTP(rec, req)

	assert.Equal(t, testSessionID, seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestWithSession_ReplacesMalformedCookie(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-uuid"})

	var seen string
	rec := httptest.NewRecorder()
	h.withSession(sessionProbe(&seen)).ServeHTTP(rec, req)

	assert.NotEqual(t, "not-a-uuid", seen)
	assert.True(t, h.ids.Valid(seen))
	require.Len(t, rec.Result().Cookies(), 1)
}
