package bot

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/filebot/app/access"
	appconfig "github.com/m3rciful/filebot/app/config"
	"github.com/m3rciful/filebot/app/delivery"
	"github.com/m3rciful/filebot/app/health"
	"github.com/m3rciful/filebot/app/membership"
	"github.com/m3rciful/filebot/app/session"
	"github.com/m3rciful/filebot/app/storage"
	coretelegram "github.com/m3rciful/filebot/core/telegram"
	"github.com/m3rciful/filebot/core/telegram/commands"
	"github.com/m3rciful/filebot/core/telegram/middleware"
	"github.com/m3rciful/filebot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App wires the bot's domain services to the Telegram runtime.
type App struct {
	cfg   *appconfig.Config
	store *storage.Store

	uploads *session.UploadTracker
	wizard  *session.Wizard

	// populated once the bot is constructed
	bot      *tele.Bot
	username string
	gate     *access.Gate
	engine   *delivery.Engine

	healthSrv *health.Server
	keepAlive *health.KeepAlive
}

// New assembles the application from its configuration and database handle.
func New(cfg *appconfig.Config, db *sqlx.DB) *App {
	store := storage.NewStore(db)
	return &App{
		cfg:       cfg,
		store:     store,
		uploads:   session.NewUploadTracker(),
		wizard:    session.NewWizard(),
		healthSrv: health.NewServer(cfg.Health.Addr, store),
		keepAlive: health.NewKeepAlive(cfg.Health.KeepAliveURL, cfg.Health.KeepAliveCron),
	}
}

func (a *App) isAdmin(userID int64) bool {
	return a.adminOptions().IsAdmin(userID)
}

func (a *App) adminOptions() middleware.AdminOptions {
	return middleware.AdminOptions{
		AdminIDs: a.cfg.Admins.IDs,
		OnReject: func(c tele.Context) error {
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: "Admins only"})
			}
			return nil
		},
	}
}

// TelegramRunOptions builds the runtime wiring consumed by core/cmd.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.registerCommands(reg)
	if err := a.registerCallbacks(reg); err != nil {
		return coretelegram.RunOptions{}, err
	}

	opts := coretelegram.RunOptions{
		Config:      a.cfg.Core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.Core, nil),

		Setup: func(ctx context.Context, rt coretelegram.Runtime) ([]coretelegram.Middleware, []coretelegram.Route, error) {
			a.bot = rt.Bot
			a.username = rt.Bot.Me.Username

			checker := membership.NewChecker(rt.Bot, membership.Options{
				Attempts:   a.cfg.Membership.Attempts,
				RetryDelay: time.Duration(a.cfg.Membership.RetryDelayMS) * time.Millisecond,
			})
			a.gate = access.NewGate(a.store, checker)
			a.engine = delivery.NewEngine(rt.Bot, delivery.Options{
				Pace: time.Duration(a.cfg.Delivery.PaceMS) * time.Millisecond,
			})

			routes := router.CommandRoutes(reg, router.CommandRouteOptions{
				AdminIDs:      a.cfg.Admins.IDs,
				OnAdminReject: a.adminOptions().OnReject,
			})
			routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
				SkipAck: map[string]struct{}{cbCheck: {}},
			}))
			routes = append(routes, router.MessageRoutes(
				[]router.Flow{a.uploadFlow(), a.wizardFlow()},
				reg,
				router.MessageOptions{UnknownMedia: a.handleStrayMedia},
			)...)

			return nil, routes, nil
		},

		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.healthSrv.Start(ctx)
			return a.keepAlive.Start(ctx)
		},
	}
	return opts, nil
}

func (a *App) registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Open a shared file link",
	})
	reg.RegisterCommand("/new_category", commands.Command{
		Handler:     a.handleNewCategory,
		Description: "Create a file category",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/categories", commands.Command{
		Handler:     a.handleCategories,
		Description: "List categories",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/upload", commands.Command{
		Handler:     a.handleUpload,
		Description: "Start uploading files into a category",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/finish_upload", commands.Command{
		Handler:     a.handleFinishUpload,
		Description: "Store the collected files",
		AdminOnly:   true,
		Aliases:     []string{"done"},
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Cancel the active dialog",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/add_channel", commands.Command{
		Handler:     a.handleAddChannel,
		Description: "Require a channel subscription",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/channels", commands.Command{
		Handler:     a.handleChannels,
		Description: "List required channels",
		AdminOnly:   true,
	})
	reg.RegisterCommand("/remove_channel", commands.Command{
		Handler:     a.handleRemoveChannel,
		Description: "Drop a required channel",
		AdminOnly:   true,
	})
}

const (
	cbCheck    = "check"
	cbView     = "view"
	cbAddFiles = "addfiles"
	cbDelCat   = "delcat"
)

func (a *App) registerCallbacks(reg *coretelegram.Registry) error {
	adminOnly := middleware.AdminOnlyMiddleware(a.adminOptions())

	for key, h := range map[string]tele.HandlerFunc{
		cbCheck:    a.handleCheckCallback,
		cbView:     adminOnly(a.handleViewCallback),
		cbAddFiles: adminOnly(a.handleAddFilesCallback),
		cbDelCat:   adminOnly(a.handleDeleteCategoryCallback),
	} {
		if err := reg.RegisterCallback(key, h); err != nil {
			return err
		}
	}
	return nil
}
