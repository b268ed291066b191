package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frog-cafe/frogcafe/internal/cli/userconfig"
	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/config"
	"github.com/frog-cafe/frogcafe/internal/logger"
	"github.com/frog-cafe/frogcafe/internal/models"
	"github.com/frog-cafe/frogcafe/internal/session"
)

// APIClient is the backend surface the commands use. *client.Client implements it.
type APIClient interface {
	BaseURL() string
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout() error

	GetMenu(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, item models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int) error

	GetCart(ctx context.Context, orderID int) ([]models.CartItem, error)
	AddToCart(ctx context.Context, orderID int, menuItems []int) error
	RemoveFromCart(ctx context.Context, orderID, menuItemID int) error

	CreateOrder(ctx context.Context) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, statusID int) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int) error
	ClearOrders(ctx context.Context) error

	GetToads(ctx context.Context) ([]models.Toad, error)
	UpdateToadStatus(ctx context.Context, id int, isTaken bool) (*models.Toad, error)

	GetDisplayData(ctx context.Context) ([]models.DisplayOrder, error)
}

var _ APIClient = (*client.Client)(nil)

// globalFlags are the persistent flags registered on the root command
type globalFlags struct {
	apiURL      string
	redirects   string
	tokenStore  string
	sessionFile string
	output      string
	verbose     bool
}

var globals globalFlags

// AddGlobalFlags registers the persistent flags shared by every command
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&globals.apiURL, "api-url", "", "Backend base URL (or set FROGCAFE_API_URL)")
	flags.StringVar(&globals.redirects, "redirects", "", "Redirect policy: none, single-hop or full (or set FROGCAFE_REDIRECTS)")
	flags.StringVar(&globals.tokenStore, "token-store", "", "Where to keep the session token: keyring or file (or set FROGCAFE_TOKEN_STORE)")
	flags.StringVar(&globals.sessionFile, "session-file", "", "Session file used by --token-store=file")
	flags.StringVarP(&globals.output, "output", "o", "", "Output format: table, json or yaml")
	flags.BoolVarP(&globals.verbose, "verbose", "v", false, "Log API traffic to stderr")
}

// options carries the dependencies of a command run. Tests inject them
// through Option; anything left unset is built from flags and config.
type options struct {
	client   APIClient
	gate     *session.Gate
	out      io.Writer
	format   string
	prompter Prompter
}

// Option configures a command run
type Option func(*options)

// WithClient sets the API client
func WithClient(c APIClient) Option {
	return func(o *options) { o.client = c }
}

// WithGate sets the session gate
func WithGate(g *session.Gate) Option {
	return func(o *options) { o.gate = g }
}

// WithOutput sets where command output is written
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithFormat sets the output format
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithPrompter sets the interactive prompter
func WithPrompter(p Prompter) Option {
	return func(o *options) { o.prompter = p }
}

// resolve applies opts and fills the rest from flags, env and user config
func resolve(opts ...Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.out == nil {
		o.out = os.Stdout
	}
	if o.prompter == nil {
		o.prompter = terminalPrompter{}
	}

	if o.client != nil && o.gate != nil {
		return o, o.normalizeFormat()
	}

	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if o.format == "" {
		o.format = settings.output
	}

	if o.client == nil || o.gate == nil {
		store, err := settings.store()
		if err != nil {
			return nil, err
		}
		if o.gate == nil {
			o.gate = session.NewGate(store)
		}
		if o.client == nil {
			o.client = client.New(client.Config{
				BaseURL:      settings.cfg.API.URL,
				Timeout:      settings.cfg.API.Timeout,
				Redirects:    settings.redirects,
				MaxRedirects: settings.cfg.API.MaxRedirects,
			}, store, settings.logger)
		}
	}

	return o, o.normalizeFormat()
}

func (o *options) normalizeFormat() error {
	format, err := parseFormat(o.format)
	if err != nil {
		return err
	}
	o.format = format
	return nil
}

// settings is the merged configuration: flags over env over user config
// over defaults
type settings struct {
	cfg       *config.Config
	redirects client.RedirectPolicy
	output    string
	logger    zerolog.Logger
}

func loadSettings() (*settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	user, err := userconfig.Load()
	if err != nil {
		return nil, err
	}

	cfg.API.URL = pick(globals.apiURL, "FROGCAFE_API_URL", user.APIURL, cfg.API.URL)
	cfg.API.Redirects = pick(globals.redirects, "FROGCAFE_REDIRECTS", user.Redirects, cfg.API.Redirects)
	cfg.Session.Store = pick(globals.tokenStore, "FROGCAFE_TOKEN_STORE", user.TokenStore, cfg.Session.Store)
	if globals.sessionFile != "" {
		cfg.Session.File = globals.sessionFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	redirects, err := client.ParseRedirectPolicy(cfg.API.Redirects)
	if err != nil {
		return nil, err
	}

	output := pick(globals.output, "FROGCAFE_OUTPUT", user.Output, formatTable)
	if _, err := parseFormat(output); err != nil {
		return nil, err
	}

	level, format := "warn", "console"
	if globals.verbose {
		level = "debug"
	} else if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = cfg.Logging.Level
	}
	if _, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = cfg.Logging.Format
	}

	return &settings{
		cfg:       cfg,
		redirects: redirects,
		output:    output,
		logger:    logger.InitWithWriter(os.Stderr, level, format),
	}, nil
}

// store returns the configured token store for the selected backend
func (s *settings) store() (session.Store, error) {
	if s.cfg.Session.Store == "file" {
		store, err := session.NewFileStore(s.cfg.Session.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open session file: %w", err)
		}
		return store, nil
	}
	return session.NewKeyringStore(s.cfg.API.URL), nil
}

// pick returns the first set value: flag, environment variable, user config, fallback
func pick(flag, envKey, user, fallback string) string {
	if flag != "" {
		return flag
	}
	if v, ok := os.LookupEnv(envKey); ok && v != "" {
		return v
	}
	if user != "" {
		return user
	}
	return fallback
}

// parseID parses a positive integer argument
func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

// notLoggedIn rewrites a missing/rejected session into a hint
func notLoggedIn(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w\nRun 'frogcafe login' to sign in", err)
	}
	return err
}
