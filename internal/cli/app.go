package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"pokefinder/internal/codec"
	"pokefinder/internal/config"
	"pokefinder/internal/domain"
	"pokefinder/internal/eventbus"
	"pokefinder/internal/logging"
	"pokefinder/internal/logic"
	"pokefinder/internal/persist"
	"pokefinder/internal/pokeapi"
	"pokefinder/internal/state"
)

// lastLinkFile mirrors the share link so the last search can be found
// outside the app
const lastLinkFile = "last-link.txt"

// App is the wiring shared by every command
type App struct {
	Config *config.Config
	Log    zerolog.Logger
	Bus    eventbus.EventBus
	Store  *logic.Store
	Client *pokeapi.Client
	Query  *persist.QueryString

	// Events receives the bus events the UI shows
	Events <-chan eventbus.DomainEvent

	logCloser io.Closer
}

// loadConfig reads the config file and applies flag and environment
// overrides
func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.configFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	if v := opts.env.GetString("endpoint"); v != "" {
		cfg.API.Endpoint = v
	}
	if v := opts.env.GetString("storage-driver"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := opts.env.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultState is the hard default adjusted by the config file
func defaultState(cfg *config.Config) state.State {
	st := state.DefaultState()
	st.AutoSubmit = cfg.UI.AutoSubmit
	st.Languages = domain.LanguagePreference(cfg.UI.Language)
	return st
}

// openStorage returns the local storage port, or a no-op port when
// persistence is disabled
func openStorage(ctx context.Context, opts *rootOptions, cfg *config.Config, log zerolog.Logger) (persist.Storage, error) {
	if opts.noPersist {
		return persist.Nop{}, nil
	}
	port, err := persist.OpenStorage(ctx, cfg.Storage.Driver, cfg.DataDir(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	return port, nil
}

// openApp loads the config and builds the logger, event bus, store and API
// client. query seeds the share link. Unless write is set the saved search
// is read but left untouched.
func openApp(ctx context.Context, opts *rootOptions, query string, write bool) (*App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := logging.Open(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Log:       log,
		Bus:       eventbus.New(log),
		logCloser: logCloser,
	}

	// Subscribe before the store exists so that failures while restoring
	// the saved search are not lost
	events := make(chan eventbus.DomainEvent, 16)
	app.Events = events
	enqueue := func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		default:
			log.Warn().Str("event", string(e.Type())).Msg("ui event queue full, dropping event")
		}
	}
	app.Bus.Subscribe(eventbus.EventPersistFailed, enqueue)
	app.Bus.Subscribe(eventbus.EventError, enqueue)
	app.Bus.Subscribe(eventbus.EventSearchSubmitted, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchSubmittedEvent); ok {
			log.Debug().Strs("fields", ev.Search.Fields).Strs("lang", ev.Languages).Msg("search submitted")
		}
	})

	storage, err := openStorage(ctx, opts, cfg, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Query = persist.NewQueryString(query)
	if !write {
		storage = readOnly{storage}
	} else if !opts.noPersist {
		app.Query.WithMirror(filepath.Join(cfg.DataDir(), lastLinkFile))
	}

	app.Store = logic.NewStore(defaultState(cfg), app.Query, storage,
		logic.WithLogger(log),
		logic.WithPublisher(app.Bus),
	)

	app.Client, err = pokeapi.New(pokeapi.Config{
		Endpoint:          cfg.API.Endpoint,
		Timeout:           cfg.RequestTimeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		CacheSize:         cfg.API.CacheSize,
		Logger:            log,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return app, nil
}

// readOnly loads from storage and discards writes
type readOnly struct {
	persist.Storage
}

func (readOnly) Save(codec.Record) error { return nil }

func (r readOnly) Close() error {
	if c, ok := r.Storage.(persist.Closer); ok {
		return c.Close()
	}
	return nil
}

// ShareLink is the link to the current search
func (a *App) ShareLink() string {
	return a.Query.Link(a.Config.API.ShareBaseURL)
}

// Variables are the query variables for the current search
func (a *App) Variables() pokeapi.Variables {
	st := a.Store.State()
	return pokeapi.BuildVariables(st.Search.Current, st.Languages, pokeapi.VariableOptions{
		PageSize:             a.Config.API.PageSize,
		UniformSortDirection: a.Config.API.UniformSortDirection,
	})
}

// Close releases the storage, bus and log file
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.Bus != nil {
		a.Bus.Close()
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
