package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrupp/authcase/internal/infra/config"
	"github.com/mkrupp/authcase/internal/infra/logging"
	"github.com/mkrupp/authcase/internal/infra/transport/http"
	"github.com/mkrupp/authcase/internal/repo/user"
	"github.com/mkrupp/authcase/internal/svc/authsvc"
)

const (
	appName = "authcase"
	svcName = "authsvc"
)

type Config struct {
	config.EnvConfig

	// Environment selects the named profile (development, testing,
	// production) that fills in storage defaults left unset.
	Environment string `env:"ENVIRONMENT" default:"development"`

	Log  logging.LoggerConfig            `envPrefix:"LOG_"`
	Auth authsvc.AuthConfig              `envPrefix:"AUTH_"`
	HTTP authsvc.HTTPTransportConfig     `envPrefix:"HTTP_"`
	User user.SQLiteUserRepositoryConfig `envPrefix:"USER_"`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	defer func() {
		log := logging.GetLogger("cmd.authsvc")

		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)

			return
		}

		log.InfoContext(ctx, "shutdown")
	}()

	if err := applyProfile(&cfg); err != nil {
		return fmt.Errorf("apply profile: %w", err)
	}

	authSvc, err := authsvc.NewAuthService(
		user.SQLiteUserRepositoryFactory(cfg.User),
		cfg.Auth,
	)
	if err != nil {
		return fmt.Errorf("new auth service: %w", err)
	}
	defer authSvc.Close()

	httpTransport := authsvc.NewHTTPTransport(authSvc, cfg.HTTP)

	if err := http.ListenAndServe(ctx, httpTransport, cfg.HTTP.HTTPTransportConfig); err != nil {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}
