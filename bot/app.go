// Package bot assembles the postcard bot application: configuration,
// storage-backed models, conversation state, and the Telegram wiring.
package bot

import (
	"github.com/backostech/postcardbot/bot/handlers"
	botmw "github.com/backostech/postcardbot/bot/middleware"
	"github.com/backostech/postcardbot/bot/models"
	"github.com/backostech/postcardbot/core/storage"
	coretelegram "github.com/backostech/postcardbot/core/telegram"
	"github.com/backostech/postcardbot/core/telegram/helpers"
	"github.com/backostech/postcardbot/core/telegram/router"
	tgsender "github.com/backostech/postcardbot/core/telegram/sender"
	"github.com/backostech/postcardbot/core/telegram/state"
)

// App is the running application. It satisfies the cmd runner's config
// and telegram interfaces.
type App struct {
	cfg *Config

	users      *models.Users
	categories *models.Categories
	postcards  *models.PostCards

	sessions   *state.Manager
	dispatcher *tgsender.Dispatcher
	handlers   *handlers.Handlers
}

// NewApp builds the application over an opened store.
func NewApp(cfg *Config, store storage.Store) *App {
	app := &App{
		cfg:        cfg,
		users:      models.NewUsers(store),
		categories: models.NewCategories(store),
		postcards:  models.NewPostCards(store),
		sessions:   state.NewManager(),
		dispatcher: tgsender.NewDispatcher(tgsender.Options{}),
	}

	app.handlers = handlers.New(handlers.Deps{
		Users:         app.users,
		Categories:    app.categories,
		PostCards:     app.postcards,
		Sessions:      app.sessions,
		Outbox:        helpers.Outbox{Dispatcher: app.dispatcher},
		Languages:     cfg.Bot.Languages,
		DefaultLocale: cfg.Bot.DefaultLocale,
	})
	app.handlers.RegisterRules()
	return app
}

// TelegramRunOptions wires the registry, middlewares, and routes.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.handlers.Register(reg)

	middlewares := coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil)
	middlewares = append(middlewares,
		coretelegram.Middleware{Name: "serialize", Use: router.SerializeMiddleware()},
		coretelegram.Middleware{Name: "user", Use: botmw.ResolveUser(botmw.Options{
			Users:         a.users,
			Superusers:    a.cfg.Bot.Superusers,
			DefaultLocale: a.cfg.Bot.DefaultLocale,
		})},
	)

	routes := router.CommandRoutes(a.handlers, reg, router.CommandRouteOptions{
		OnAdminReject:     a.handlers.AccessDenied,
		OnSuperuserReject: a.handlers.AccessDenied,
	})
	routes = append(routes, router.TextRoutes(a.handlers, reg, router.TextOptions{
		UnknownText:     a.handlers.UnknownText,
		UnexpectedPhoto: a.handlers.UnexpectedPhoto,
	})...)
	routes = append(routes, router.CallbackRoute(a.handlers, reg, router.CallbackOptions{
		NotFound: a.handlers.UnknownAction,
	}))

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Dispatcher:  a.dispatcher,
		Middlewares: middlewares,
		Routes:      routes,
	}, nil
}
