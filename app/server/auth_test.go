package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, passwd string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestNewOperatorAuth(t *testing.T) {
	t.Run("disabled without hash", func(t *testing.T) {
		a, err := NewOperatorAuth("admin", "")
		require.NoError(t, err)
		assert.Nil(t, a)
		assert.False(t, a.Enabled())
	})

	t.Run("enabled", func(t *testing.T) {
		a, err := NewOperatorAuth("admin", testHash(t, "secret"))
		require.NoError(t, err)
		assert.True(t, a.Enabled())
	})

	t.Run("user required", func(t *testing.T) {
		_, err := NewOperatorAuth("", testHash(t, "secret"))
		require.Error(t, err)
	})

	t.Run("invalid hash", func(t *testing.T) {
		_, err := NewOperatorAuth("admin", "not-a-hash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid password hash")
	})
}

func TestOperatorAuth_Check(t *testing.T) {
	a, err := NewOperatorAuth("admin", testHash(t, "secret"))
	require.NoError(t, err)

	assert.True(t, a.Check("admin", "secret"))
	assert.False(t, a.Check("admin", "wrong"))
	assert.False(t, a.Check("other", "secret"))
	assert.False(t, a.Check("", ""))
}

func TestOperatorAuth_Middleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("disabled passes through", func(t *testing.T) {
		var a *OperatorAuth
		rec := httptest.NewRecorder()
		a.Middleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", http.NoBody))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	a, err := NewOperatorAuth("admin", testHash(t, "secret"))
	require.NoError(t, err)
	h := a.Middleware()(next)

	t.Run("no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/", http.NoBody))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/", http.NoBody)
		req.SetBasicAuth("admin", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
