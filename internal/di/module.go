package di

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/waytodrive/orderadmin/internal/app"
	"github.com/waytodrive/orderadmin/internal/config"
	"github.com/waytodrive/orderadmin/internal/feed"
	"github.com/waytodrive/orderadmin/internal/feed/memory"
	"github.com/waytodrive/orderadmin/internal/logger"
	"github.com/waytodrive/orderadmin/internal/pkg/auth"
	"github.com/waytodrive/orderadmin/internal/server/http/handlers"
	"github.com/waytodrive/orderadmin/internal/server/http/router"
	"github.com/waytodrive/orderadmin/internal/storage/postgres"
	"github.com/waytodrive/orderadmin/internal/store"
	"github.com/waytodrive/orderadmin/internal/usecase"
)

// Module assembles the full application graph. Extra options may override
// individual components in tests.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		fx.Provide(newFeedProvider),
		usecase.Module,
		store.Module,
		fx.Provide(func(facade *app.AdminFacade) handlers.AdminFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

type feedParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// newFeedProvider selects the feed driver: the Postgres mirror when a DSN is
// configured, otherwise the in-memory provider (offline demo mode).
func newFeedProvider(p feedParams) (feed.Provider, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("no database configured, using in-memory order feed")
		return memory.New(), nil
	}

	provider, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Config.FeedPollInterval, p.Logger)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			provider.Close()
			return nil
		},
	})
	return provider, nil
}
