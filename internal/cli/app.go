// Package cli implements the insights terminal client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/honeycarbs/occupation-insights/internal/backend"
	"github.com/honeycarbs/occupation-insights/internal/config"
	"github.com/honeycarbs/occupation-insights/internal/domain"
	"github.com/honeycarbs/occupation-insights/internal/domain/aggregation"
	"github.com/honeycarbs/occupation-insights/internal/domain/resolver"
	"github.com/honeycarbs/occupation-insights/internal/domain/suggestion"
	"github.com/honeycarbs/occupation-insights/internal/handoff"
	"github.com/honeycarbs/occupation-insights/internal/proxy"
	"github.com/honeycarbs/occupation-insights/pkg/gateway"
	"github.com/honeycarbs/occupation-insights/pkg/logging"
)

const usage = `usage: insights <command> [flags]

commands:
  health                         check the analysis backend
  search -q <title> [-l <loc>]   resolve a job title and print its report
  soc [-code c] [-category k]    browse the precomputed occupation analysis`

// ErrFailed marks a command that ran but could not produce a result; the
// user has already been told why.
var ErrFailed = errors.New("command failed")

// App runs subcommands against the configured services
type App struct {
	cfg        config.Config
	logger     *logging.Logger
	in         *bufio.Reader
	out        io.Writer
	httpClient *http.Client
	store      handoff.Store
}

// Option configures an App
type Option func(*App)

// WithHTTPClient sets the client used for backend and proxy calls
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) { a.httpClient = c }
}

// WithHandoffStore replaces the store built from configuration
func WithHandoffStore(s handoff.Store) Option {
	return func(a *App) { a.store = s }
}

func New(cfg config.Config, logger *logging.Logger, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		logger: logger,
		in:     bufio.NewReader(in),
		out:    out,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run dispatches args[0] to a subcommand
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "health":
		return a.health(ctx)
	case "search":
		return a.search(ctx, args[1:])
	case "soc":
		return a.soc(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) analyzer() (*backend.Analyzer, error) {
	client, err := gateway.NewClient(gateway.Config{BaseURL: a.cfg.Backend.BaseURL, HTTPClient: a.httpClient})
	if err != nil {
		return nil, err
	}
	return backend.NewAnalyzer(client)
}

func (a *App) health(ctx context.Context) error {
	analyzer, err := a.analyzer()
	if err != nil {
		return err
	}

	status, err := analyzer.Health(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Backend unreachable: %v\n", err)
		return ErrFailed
	}

	fmt.Fprintf(a.out, "Backend status: %s\n", status)
	return nil
}

func (a *App) handoffStore(ctx context.Context) (handoff.Store, func(), error) {
	if a.store != nil {
		return a.store, func() {}, nil
	}
	if a.cfg.Handoff.RedisAddr == "" {
		return handoff.NewMemoryStore(a.cfg.Handoff.TTL), func() {}, nil
	}

	store, err := handoff.NewRedisStore(ctx, handoff.RedisConfig{
		Addr:     a.cfg.Handoff.RedisAddr,
		Password: a.cfg.Handoff.RedisPassword,
		DB:       a.cfg.Handoff.RedisDB,
		TTL:      a.cfg.Handoff.TTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func (a *App) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "job title to search for")
	location := fs.String("l", "", "location, defaults to "+domain.DefaultLocation)
	session := fs.String("session", "", "handoff session id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	analyzer, err := a.analyzer()
	if err != nil {
		return err
	}
	store, closeStore, err := a.handoffStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	nav := resolver.NavigatorFunc(func(ctx context.Context, n resolver.Navigation) error {
		report, err := store.Load(ctx, n.Session)
		if err != nil {
			return fmt.Errorf("read handed-off report: %w", err)
		}
		printReport(a.out, report)
		return nil
	})

	r, err := resolver.New(analyzer, store, nav,
		resolver.WithSession(*session),
		resolver.WithTimeout(a.cfg.Backend.AnalyzeTimeout),
		resolver.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Analyzing...")
	snap, err := r.Submit(ctx, *query, *location)
	if errors.Is(err, domain.ErrEmptyQuery) {
		fmt.Fprintln(a.out, "Please enter a job title.")
		return ErrFailed
	}
	if err != nil {
		return err
	}

	selector := suggestion.NewSelector(r)
	for snap.State == resolver.Suggesting {
		idx, ok := a.choose(selector.Items())
		if !ok {
			return nil
		}
		fmt.Fprintln(a.out, "Analyzing...")
		snap, err = selector.Pick(ctx, idx)
		if err != nil {
			return err
		}
	}

	if snap.State == resolver.Failed {
		fmt.Fprintln(a.out, snap.ErrorMessage)
		return ErrFailed
	}
	return nil
}

// choose prints the suggestions and reads a 1-based pick; empty input or EOF cancels
func (a *App) choose(items []suggestion.Item) (int, bool) {
	fmt.Fprintln(a.out, "Did you mean one of these?")
	for i, item := range items {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, item)
	}

	for {
		fmt.Fprint(a.out, "Pick a number (enter to cancel): ")
		line, err := a.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			fmt.Fprintln(a.out)
			return 0, false
		}

		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= len(items) {
			return n - 1, true
		}
		fmt.Fprintf(a.out, "Enter a number between 1 and %d.\n", len(items))
		if err != nil {
			return 0, false
		}
	}
}

func (a *App) soc(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("soc", flag.ContinueOnError)
	fs.SetOutput(a.out)
	code := fs.String("code", "", "occupation code, defaults to the first one")
	category := fs.String("category", domain.Responsibilities.String(), "responsibilities, skills, qualifications or unique_aspects")
	proxyURL := fs.String("url", a.cfg.Results.ProxyURL, "results proxy base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := domain.ParseCategory(*category)
	if err != nil {
		return err
	}

	client, err := proxy.NewClient(*proxyURL, a.httpClient)
	if err != nil {
		return err
	}

	view := aggregation.NewView(nil)
	if err := view.Load(ctx, client); err != nil {
		a.logger.Debug("dataset load failed", "err", err)
		fmt.Fprintln(a.out, view.Render().Error)
		return ErrFailed
	}
	if *code != "" {
		if err := view.SelectOccupation(*code); err != nil {
			return err
		}
	}
	if err := view.SelectCategory(c); err != nil {
		return err
	}

	printPage(a.out, view.Render())
	return nil
}
