package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"user-hub/internal/config"
	"user-hub/internal/database"
	"user-hub/internal/model"
	"user-hub/internal/service"
	"user-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	verifyAccessToken = service.VerifyAccessToken
	getUserByEmail = store.GetUserByEmail
}

func testAuth() config.Auth {
	return config.Auth{Secret: "testsecret", TokenTTL: time.Minute}
}

// newContext 建立帶 access_token cookie 的測試 context，token 為空則不帶 cookie
func newContext(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: service.AccessTokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestResolveUser(t *testing.T) {
	t.Cleanup(restore)
	cfg := testAuth()

	// no cookie
	ctx, _ := newContext("")
	_, err := resolveUser(ctx, &database.FakeDB{}, cfg)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	// garbage token
	ctx, _ = newContext("garbage")
	_, err = resolveUser(ctx, &database.FakeDB{}, cfg)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	// expired token
	expired, _, signErr := service.IssueAccessToken(config.Auth{Secret: cfg.Secret, TokenTTL: -time.Second}, model.User{Email: "a@x.com"})
	require.NoError(t, signErr)
	ctx, _ = newContext(expired)
	_, err = resolveUser(ctx, &database.FakeDB{}, cfg)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	// subject 缺漏
	empty, _, signErr2 := service.IssueAccessToken(cfg, model.User{Email: ""})
	require.NoError(t, signErr2)
	ctx, _ = newContext(empty)
	_, err = resolveUser(ctx, &database.FakeDB{}, cfg)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	tok, _, signErr3 := service.IssueAccessToken(cfg, model.User{Email: "a@x.com"})
	require.NoError(t, signErr3)

	// subject 查無使用者
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, fmt.Errorf("GetUserByEmail: %w", pgx.ErrNoRows)
	}
	ctx, _ = newContext(tok)
	_, err = resolveUser(ctx, &database.FakeDB{}, cfg)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, err))

	// 資料庫故障需原樣傳遞，不得轉為 401
	outage := errors.New("connection refused")
	getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
		return nil, outage
	}
	ctx, _ = newContext(tok)
	_, err = resolveUser(ctx, &database.FakeDB{}, cfg)
	require.ErrorIs(t, err, outage)
	var he *echo.HTTPError
	require.False(t, errors.As(err, &he))

	// success
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		require.Equal(t, "a@x.com", email)
		return &model.User{ID: 7, Email: email}, nil
	}
	ctx, _ = newContext(tok)
	user, err := resolveUser(ctx, &database.FakeDB{}, cfg)
	require.NoError(t, err)
	require.Equal(t, 7, user.ID)
}

func TestRequireAuth(t *testing.T) {
	t.Cleanup(restore)
	cfg := testAuth()
	tok, _, err := service.IssueAccessToken(cfg, model.User{Email: "b@x.com"})
	require.NoError(t, err)
	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		return &model.User{ID: 2, Email: email}, nil
	}

	// success path
	ctx, rec := newContext(tok)
	called := false
	handler := RequireAuth(&database.FakeDB{}, cfg)(func(c echo.Context) error {
		called = true
		u := c.Get(ContextUserKey).(*model.User)
		require.Equal(t, 2, u.ID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(&database.FakeDB{}, cfg)(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	t.Cleanup(restore)
	cfg := testAuth()
	adminTok, _, err := service.IssueAccessToken(cfg, model.User{Email: "admin@x.com"})
	require.NoError(t, err)
	userTok, _, err := service.IssueAccessToken(cfg, model.User{Email: "user@x.com"})
	require.NoError(t, err)

	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		return &model.User{ID: 3, Email: email, IsAdmin: email == "admin@x.com"}, nil
	}

	// admin ok
	ctx, rec := newContext(adminTok)
	called := false
	err = RequireAdmin(&database.FakeDB{}, cfg)(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "admin")
	})(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// non-admin should get 403
	ctx, _ = newContext(userTok)
	called = false
	err = RequireAdmin(&database.FakeDB{}, cfg)(func(echo.Context) error { called = true; return nil })(ctx)
	require.Equal(t, http.StatusForbidden, httpCode(t, err))
	require.False(t, called)

	// unauthenticated stays 401
	ctx, _ = newContext("")
	err = RequireAdmin(&database.FakeDB{}, cfg)(func(echo.Context) error { return nil })(ctx)
	require.Equal(t, http.StatusUnauthorized, httpCode(t, err))
}
