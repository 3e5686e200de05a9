package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) middleware.Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := middleware.Wrap(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
		mark("inner"), mark("outer"),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLogging(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := middleware.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "<-- 418 I'm a teapot", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/v1/status", entry.Data["uri"])
}

func TestCors(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		allowed     []string
		origin      string
		want        string
	}{
		{"development", true, nil, "http://example.com", "http://example.com"},
		{"listed", false, []string{"https://mines.example"}, "https://mines.example", "https://mines.example"},
		{"unlisted", false, []string{"https://mines.example"}, "http://example.com", ""},
		{"no list", false, nil, "http://example.com", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := middleware.Cors(test.development, test.allowed...)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
			)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", test.origin)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, test.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func newCookies(t *testing.T) *config.Cookies {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwt := config.NewJWTWithKeys(key, &key.PublicKey, time.Hour)
	return config.NewCookiesWith(jwt, "", false, http.SameSiteStrictMode)
}

func TestAuth(t *testing.T) {
	log, _ := test.NewNullLogger()
	cookies := newCookies(t)

	var claims *config.PlayerClaims
	h := middleware.Auth(log, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ = middleware.PlayerClaims(r.Context())
		io.WriteString(w, "ok")
	}))

	t.Run("anonymous", func(t *testing.T) {
		claims = nil
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Nil(t, claims)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("signed in", func(t *testing.T) {
		login := httptest.NewRecorder()
		require.NoError(t, cookies.Refresh(login, config.NewPlayerClaims(7, "alice")))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range login.Result().Cookies() {
			req.AddCookie(c)
		}
		claims = nil
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, claims)
		assert.Equal(t, int64(7), claims.PlayerId)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth", Value: "a.b"})
		req.AddCookie(&http.Cookie{Name: "sign", Value: "c"})
		claims = nil
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Nil(t, claims)
		assert.NotEmpty(t, rec.Result().Cookies())
	})
}
