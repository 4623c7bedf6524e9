package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"gopher-gateway/internal/common"
)

// TestApplication runs the full container under fxtest
type TestApplication struct {
	tb      testing.TB
	testApp *fxtest.App
	options []fx.Option
	service *common.ServiceOptions
}

func NewTestApplication(tb testing.TB, opts ...common.Option) *TestApplication {
	return &TestApplication{
		tb:      tb,
		service: resolveOptions(opts),
	}
}

// WithOption adds an fx option, typically fx.Populate to reach a component.
func (ta *TestApplication) WithOption(opt fx.Option) *TestApplication {
	ta.options = append(ta.options, opt)
	return ta
}

func (ta *TestApplication) Start(ctx context.Context) error {
	testOptions := modules(ta.service)

	// Add user-provided options
	testOptions = append(testOptions, ta.options...)

	// Configure test app
	testOptions = append(testOptions,
		fx.StartTimeout(10*time.Second),
		fx.StopTimeout(10*time.Second),
	)

	ta.testApp = fxtest.New(ta.tb, testOptions...)

	return ta.testApp.Start(ctx)
}

func (ta *TestApplication) Stop(ctx context.Context) error {
	if ta.testApp != nil {
		return ta.testApp.Stop(ctx)
	}
	return nil
}
