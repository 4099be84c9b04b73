package server

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/teemow/gmailclient/internal/api"
	"github.com/teemow/gmailclient/internal/gmail"
	"github.com/teemow/gmailclient/internal/instrumentation"
	"github.com/teemow/gmailclient/internal/logging"
)

// ServerContext holds the shared state for the MCP server: one Gmail client
// bundle per authenticated account, created lazily on first use.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	gmailClients map[string]*gmail.Client // Maps account name to Gmail client
	observer     api.RequestObserver
	metrics      *instrumentation.Metrics
	log          *slog.Logger
	mu           sync.RWMutex
	shutdown     bool
}

// ServerContextOption configures a ServerContext.
type ServerContextOption func(*ServerContext)

// WithObserver attaches a request observer to every Gmail client the
// context creates.
func WithObserver(observer api.RequestObserver) ServerContextOption {
	return func(sc *ServerContext) { sc.observer = observer }
}

// WithMetrics attaches a metrics recorder for tool invocation metrics. The
// recorder also acts as the request observer unless one is set explicitly.
func WithMetrics(metrics *instrumentation.Metrics) ServerContextOption {
	return func(sc *ServerContext) {
		sc.metrics = metrics
		if sc.observer == nil {
			sc.observer = metrics
		}
	}
}

// WithLogger sets the logger used by the context and its clients.
func WithLogger(logger *slog.Logger) ServerContextOption {
	return func(sc *ServerContext) { sc.log = logger }
}

// NewServerContext creates a new server context. A Gmail client for the
// default account is created eagerly when a token is already cached; other
// accounts are initialized on first use.
func NewServerContext(ctx context.Context, opts ...ServerContextOption) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		gmailClients: make(map[string]*gmail.Client),
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}

	if gmail.HasToken() {
		client, err := gmail.NewClient(shutdownCtx, sc.clientOptions())
		if err != nil {
			// Not fatal, creation is re-attempted on first use.
			sc.log.Warn("failed to create Gmail client for default account",
				logging.Account("default"), logging.Err(err))
		} else {
			sc.gmailClients["default"] = client
		}
	}

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Metrics returns the metrics recorder, or nil when instrumentation is not
// configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

func (sc *ServerContext) clientOptions() gmail.Options {
	return gmail.Options{
		Observer: sc.observer,
		Logger:   sc.log,
	}
}

// GmailClientForAccount returns the Gmail client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) GmailClientForAccount(account string) *gmail.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.gmailClients[account]; ok {
		return client
	}

	if !gmail.HasTokenForAccount(account) {
		return nil
	}

	client, err := gmail.NewClientForAccount(sc.ctx, account, sc.clientOptions())
	if err != nil {
		sc.log.Warn("failed to create Gmail client",
			logging.Account(account), logging.Err(err))
		return nil
	}

	sc.gmailClients[account] = client
	return client
}

// GmailClient returns the Gmail client for the default account
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.GmailClientForAccount("default")
}

// Accounts returns the names of the accounts with an initialized Gmail
// client, sorted for stable output.
func (sc *ServerContext) Accounts() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	accounts := make([]string, 0, len(sc.gmailClients))
	for account := range sc.gmailClients {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

// SetGmailClientForAccount sets the Gmail client for a specific account
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// SetGmailClient sets the Gmail client for the default account
func (sc *ServerContext) SetGmailClient(client *gmail.Client) {
	sc.SetGmailClientForAccount("default", client)
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
