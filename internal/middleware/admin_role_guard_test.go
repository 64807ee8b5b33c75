package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGuard(t *testing.T, setAdmin interface{}) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setAdmin != nil {
		c.Set(CtxIsAdminKey, setAdmin)
	}

	called := false
	err := AdminRoleGuard()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return rec, called
}

func TestAdminRoleGuard_Admin(t *testing.T) {
	rec, called := runGuard(t, true)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleGuard_NonAdmin(t *testing.T) {
	rec, called := runGuard(t, false)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_NoAuthContext(t *testing.T) {
	rec, called := runGuard(t, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
