package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/gateway"
	"rag-iishka-client/internal/service"
	"rag-iishka-client/internal/session"
	"rag-iishka-client/internal/view"
	"rag-iishka-client/pkg/config"
	"rag-iishka-client/pkg/logger"

	"go.uber.org/zap"
)

const usage = `Usage: rag-iishka-cli [-profile name] [-server url] [-lang ru|en] <command> [flags]

Commands:
  login            -email, -password
  register         -username, -email, -password
  logout
  whoami
  upload           [-type receipt|statement|screenshot] [-no-wait] FILE
  list             [-limit N]
  process          DOCUMENT_ID
  details          DOCUMENT_ID
  recommendations  DOCUMENT_ID
`

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	profile := flag.String("profile", "default", "Credentials profile")
	server := flag.String("server", "", "Override API base URL")
	lang := flag.String("lang", "", "Output language (ru, en)")
	logLevel := flag.String("log-level", "warn", "Log level, logs go to stderr")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *server != "" {
		cfg.API.BaseURL = *server
	}
	if *lang != "" {
		cfg.Client.Locale = *lang
	}

	if err := logger.InitWithOutput(*logLevel, "stderr"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	a := newApp(cfg, *profile, logger.Get())
	a.out = os.Stdout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = a.run(ctx, flag.Args())
	a.docs.Wait()
	if err == nil {
		return 0
	}
	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	fmt.Fprintln(os.Stderr, a.message(err))
	return 1
}

func newApp(cfg *config.Config, profile string, log *zap.Logger) *app {
	store := session.NewFileStore(cfg.Client.CredentialsFile)
	log.Debug("Using credentials file", zap.String("path", store.Path()), zap.String("profile", profile))
	cache := service.NewResultCache()
	gw := gateway.New(
		cfg.API.BaseURL,
		&http.Client{Timeout: cfg.API.Timeout},
		store,
		log,
		gateway.WithLogoutHook(func(_ context.Context, id string) {
			cache.Forget(id)
		}),
	)
	apiClient := client.New(gw, log)

	return &app{
		profile: profile,
		cfg:     cfg,
		store:   store,
		cache:   cache,
		auth:    service.NewAuthService(apiClient, store, cache, log),
		docs: service.NewDocumentService(apiClient, cache, service.DocumentOptions{
			AutoProcess:      cfg.Client.AutoProcess,
			AutoProcessDelay: cfg.Client.AutoProcessDelay,
		}, log),
		cat:    view.FromLocale(cfg.Client.Locale),
		logger: log,
	}
}
