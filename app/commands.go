package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/snaapy/app/ambient"
	"github.com/umputun/snaapy/app/enum"
	"github.com/umputun/snaapy/app/server"
	"github.com/umputun/snaapy/app/store"
	"github.com/umputun/snaapy/app/theme"
)

// memoryDB is the --db value selecting the in-memory store, nothing survives a restart.
const memoryDB = "memory"

// prefsStore is the preference storage used by commands.
type prefsStore interface {
	theme.KVStore
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]store.Pref, error)
	Close() error
}

// openStore opens the preference store for the db URL.
func openStore(db string) (prefsStore, error) {
	if db == memoryDB {
		log.Printf("[WARN] using in-memory preferences, theme choice won't survive restart")
		return store.NewMemory(), nil
	}
	st, err := store.New(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	return st, nil
}

// ambientDetector maps the --ambient option to a detector.
func ambientDetector(mode string) (theme.AmbientDetector, error) {
	switch mode {
	case "", "auto":
		return ambient.Auto(), nil
	case "dark":
		return ambient.Static{Dark: true}, nil
	case "light":
		return ambient.Static{Dark: false}, nil
	case "none":
		return ambient.None{}, nil
	default:
		return nil, fmt.Errorf("unknown ambient mode %q", mode)
	}
}

// ServerCmd implements the server subcommand
type ServerCmd struct {
	DB      string `short:"d" long:"db" env:"SNAAPY_DB" default:"snaapy.db" description:"database URL (sqlite file, postgres://... or memory)"`
	Ambient string `long:"ambient" env:"SNAAPY_AMBIENT" default:"auto" choice:"auto" choice:"dark" choice:"light" choice:"none" description:"host light/dark preference source"`

	Server struct {
		Address         string        `long:"address" env:"ADDRESS" default:":8080" description:"server listen address"`
		ReadTimeout     time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read timeout"`
		WriteTimeout    time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30s" description:"write timeout"`
		IdleTimeout     time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"60s" description:"idle timeout"`
		ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"5s" description:"graceful shutdown timeout"`
		BodySizeLimit   int64         `long:"body-limit" env:"BODY_LIMIT" default:"65536" description:"max request body size in bytes"`
		RequestsPerSec  int64         `long:"rps" env:"RPS" default:"100" description:"max requests per second"`
	} `group:"server" namespace:"server" env-namespace:"SNAAPY_SERVER"`

	Auth struct {
		User         string `long:"user" env:"USER" default:"admin" description:"operator user for the theme API"`
		PasswordHash string `long:"password-hash" env:"PASSWORD_HASH" description:"bcrypt hash of operator password (enables auth on theme API writes)"`
	} `group:"auth" namespace:"auth" env-namespace:"SNAAPY_AUTH"`

	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`

	ctx    context.Context
	cancel context.CancelFunc
}

// Execute runs the server command
func (s *ServerCmd) Execute(_ []string) error {
	setupLogs(s.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if s.ctx == nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
		signals(s.cancel)
	}

	return s.run(s.ctx)
}

func (s *ServerCmd) run(ctx context.Context) error {
	log.Printf("[INFO] starting snaapy server on %s", s.Server.Address)
	if s.Auth.PasswordHash != "" {
		log.Printf("[INFO] theme API writes require operator auth for %q", s.Auth.User)
	}

	kv, err := openStore(s.DB)
	if err != nil {
		return err
	}
	defer kv.Close()

	detector, err := ambientDetector(s.Ambient)
	if err != nil {
		return err
	}

	// theme is resolved before anything renders, handlers refuse an uninitialized store
	themeStore := theme.New(kv, detector)
	themeStore.Initialize(ctx)

	if w, ok := detector.(theme.AmbientWatcher); ok {
		if err := themeStore.WatchAmbient(ctx, w); err != nil {
			log.Printf("[DEBUG] ambient preference changes not watched: %v", err)
		}
	}

	srv, err := server.New(themeStore, server.Config{
		Address:         s.Server.Address,
		ReadTimeout:     s.Server.ReadTimeout,
		WriteTimeout:    s.Server.WriteTimeout,
		IdleTimeout:     s.Server.IdleTimeout,
		ShutdownTimeout: s.Server.ShutdownTimeout,
		Version:         revision,
		AuthUser:        s.Auth.User,
		PasswordHash:    s.Auth.PasswordHash,
		BodySizeLimit:   s.Server.BodySizeLimit,
		RequestsPerSec:  s.Server.RequestsPerSec,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// ThemeCmd implements the theme subcommand, it works on the stored preference directly
type ThemeCmd struct {
	DB    string `short:"d" long:"db" env:"SNAAPY_DB" default:"snaapy.db" description:"database URL (sqlite file or postgres://...)"`
	Set   string `long:"set" choice:"light" choice:"dark" description:"persist the theme used on next start"`
	Reset bool   `long:"reset" description:"remove the persisted theme, next start falls back to ambient preference"`
	List  bool   `long:"list" description:"list all stored preferences"`
	Debug bool   `long:"dbg" env:"DEBUG" description:"debug mode"`

	out io.Writer
}

// Execute runs the theme command
func (c *ThemeCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.Set != "" && c.Reset {
		return errors.New("--set and --reset are mutually exclusive")
	}

	kv, err := openStore(c.DB)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := context.Background()
	switch {
	case c.Reset:
		return c.reset(ctx, kv)
	case c.Set != "":
		return c.set(ctx, kv)
	case c.List:
		return c.list(ctx, kv)
	default:
		return c.show(ctx, kv)
	}
}

func (c *ThemeCmd) show(ctx context.Context, kv prefsStore) error {
	v, err := kv.Get(ctx, theme.StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		_, _ = fmt.Fprintf(c.out, "%s: not set\n", theme.StorageKey)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme: %w", err)
	}
	if _, perr := enum.ParseTheme(v); perr != nil {
		_, _ = fmt.Fprintf(c.out, "%s: %s (invalid, ignored on start)\n", theme.StorageKey, v)
		return nil
	}
	_, _ = fmt.Fprintf(c.out, "%s: %s\n", theme.StorageKey, v)
	return nil
}

// set goes through the theme store, so the value is validated and written the same way the server does.
func (c *ThemeCmd) set(ctx context.Context, kv prefsStore) error {
	t, err := enum.ParseTheme(c.Set)
	if err != nil {
		return fmt.Errorf("%w: %s", theme.ErrInvalidTheme, c.Set)
	}
	st := theme.New(kv, ambient.None{})
	st.Initialize(ctx)
	if err := st.Set(ctx, t); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	// Set logs persistence failures, verify the write landed
	v, err := kv.Get(ctx, theme.StorageKey)
	if err != nil {
		return fmt.Errorf("theme %s not persisted: %w", t, err)
	}
	if v != t.String() {
		return fmt.Errorf("theme %s not persisted, stored %q", t, v)
	}
	log.Printf("[INFO] theme set to %s", t)
	_, _ = fmt.Fprintf(c.out, "%s: %s\n", theme.StorageKey, t)
	return nil
}

func (c *ThemeCmd) reset(ctx context.Context, kv prefsStore) error {
	err := kv.Delete(ctx, theme.StorageKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to reset theme: %w", err)
	}
	_, _ = fmt.Fprintf(c.out, "%s: reset\n", theme.StorageKey)
	return nil
}

func (c *ThemeCmd) list(ctx context.Context, kv prefsStore) error {
	prefs, err := kv.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list preferences: %w", err)
	}
	for _, p := range prefs {
		_, _ = fmt.Fprintf(c.out, "%s: %s (updated %s)\n", p.Key, p.Value, p.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}
