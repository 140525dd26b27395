// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/config"
	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/infra/dependency"
	"github.com/finance-tracker/ewallet/internal/integration/persistence"
	"github.com/finance-tracker/ewallet/internal/integration/persistence/model"
	"github.com/finance-tracker/ewallet/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	statusCode   int
	header       map[string][]string
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Wallet
	cfg      *config.Config
	storage  adapter.KeyValueStore
	injector *dependency.Injector
	timeMock *mock.Time
	db       *mock.Db
	redis    *mock.Redis

	// remembered response values, substituted into later paths as {name}
	saved map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Ledger.RetryInterval = 50 * time.Millisecond

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            cfg,
			timeMock:       mock.NewTime(),
			saved:          make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc == nil {
			return ctx, nil
		}
		tc.stop()
		if tc.db != nil {
			if clearErr := tc.db.ClearDB(); clearErr != nil {
				return ctx, clearErr
			}
		}
		if tc.redis != nil {
			if clearErr := tc.redis.Clear(context.Background()); clearErr != nil {
				return ctx, clearErr
			}
		}
		return ctx, nil
	})

	registerWalletSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerWalletSteps registers steps that control the service under test.
func registerWalletSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^the wallet is running on "([^"]*)" storage$`, theWalletIsRunningOn)
	ctx.Step(`^the wallet restarts$`, theWalletRestarts)
	ctx.Step(`^the storage should hold (\d+) slices$`, theStorageShouldHoldSlices)
}

// start wires a fresh service over the scenario's storage and waits for
// the ledger to finish loading.
func (tc *TestContext) start() error {
	tc.injector = dependency.Wire(tc.cfg, tc.storage, tc.timeMock)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tc.injector.Ledger.WaitReady(ctx); err != nil {
		return fmt.Errorf("ledger did not load: %w", err)
	}

	tc.server = httptest.NewServer(tc.injector.Router.Setup(tc.cfg.Server.Environment))
	return nil
}

func (tc *TestContext) stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	if tc.injector != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tc.injector.Close(ctx)
		tc.injector = nil
	}
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.timeMock.SetCurrentTime(at)
	return nil
}

func theWalletIsRunningOn(ctx context.Context, driver string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	switch driver {
	case config.StorageDriverSQLite:
		tc.db = mock.NewDb(&model.KeyValueModel{})
		tc.storage = persistence.NewGormKeyValueStore(tc.db.DbConn, tc.cfg.Storage.KeyPrefix)
	case config.StorageDriverRedis:
		tc.redis = mock.NewRedis()
		tc.storage = persistence.NewRedisKeyValueStore(tc.redis.Client, tc.cfg.Storage.KeyPrefix)
	case config.StorageDriverMemory:
		tc.storage = persistence.NewMemoryKeyValueStore()
	default:
		return fmt.Errorf("unknown storage driver %q", driver)
	}

	return tc.start()
}

func theWalletRestarts(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.injector == nil {
		return fmt.Errorf("the wallet is not running")
	}
	tc.stop()
	return tc.start()
}

func theStorageShouldHoldSlices(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var n int64
	switch {
	case tc.db != nil:
		var err error
		if n, err = tc.db.Count(&model.KeyValueModel{}); err != nil {
			return err
		}
	case tc.redis != nil:
		n = int64(len(tc.redis.Keys()))
	default:
		return fmt.Errorf("the wallet is not running on sqlite or redis storage")
	}
	if int(n) != expected {
		return fmt.Errorf("expected %d stored slices, got %d", expected, n)
	}
	return nil
}
