package main

import (
	"context"
	"errors"
	"testing"

	"user-hub/internal/cache"
	"user-hub/internal/config"
	"user-hub/internal/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	origLoadConfig := loadConfig
	origNewPgxPool := newPgxPool
	origNewRedisClient := newRedisClient
	origRunMigrations := runMigrationsFn
	origStartServer := startServer
	origExit := exitFunc
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newPgxPool = origNewPgxPool
		newRedisClient = origNewRedisClient
		runMigrationsFn = origRunMigrations
		startServer = origStartServer
		exitFunc = origExit
	})
}

func stubHappyPath() {
	loadConfig = func() (*config.Config, error) {
		return &config.Config{
			DatabaseURL: "postgres://localhost/app",
			RedisAddr:   "localhost:6379",
			Auth:        config.Auth{Secret: "s", TokenTTL: config.DefaultTokenTTL},
		}, nil
	}
	newPgxPool = func(context.Context, string) (database.DB, error) {
		return &database.FakeDB{CloseFn: func() {}}, nil
	}
	newRedisClient = func(string, string, int) (cache.Cache, error) {
		return &cache.FakeCache{CloseFn: func() error { return nil }}, nil
	}
	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return nil }
}

func TestCustomValidator(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	cv := &CustomValidator{validator: validator.New()}

	require.NoError(t, cv.Validate(payload{Email: "a@x.com"}))
	require.Error(t, cv.Validate(payload{Email: "not-an-email"}))
}

func TestRunSuccess(t *testing.T) {
	restoreGlobals(t)
	stubHappyPath()

	var startedAddr string
	startServer = func(_ *echo.Echo, addr string) error {
		startedAddr = addr
		return nil
	}

	require.NoError(t, run())
	require.Equal(t, ":8080", startedAddr)
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")

	cases := []struct {
		name string
		stub func()
	}{
		{"config error", func() {
			loadConfig = func() (*config.Config, error) { return nil, boom }
		}},
		{"db error", func() {
			newPgxPool = func(context.Context, string) (database.DB, error) { return nil, boom }
		}},
		{"redis error", func() {
			newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, boom }
		}},
		{"migration error", func() {
			runMigrationsFn = func(string) error { return boom }
		}},
		{"server error", func() {
			startServer = func(*echo.Echo, string) error { return boom }
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			restoreGlobals(t)
			stubHappyPath()
			tc.stub()
			require.Error(t, run())
		})
	}
}

func TestMainFunction(t *testing.T) {
	restoreGlobals(t)
	stubHappyPath()

	exitFunc = func(int) { t.Fatal("unexpected exit") }
	require.NotPanics(t, main)
}

func TestMainExit(t *testing.T) {
	restoreGlobals(t)
	stubHappyPath()
	loadConfig = func() (*config.Config, error) { return nil, errors.New("boom") }

	var code int
	exitFunc = func(c int) { code = c }
	main()
	require.Equal(t, 1, code)
}
