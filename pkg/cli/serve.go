package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/govbridge/tdabot/pkg/cli/config"
	controller "github.com/govbridge/tdabot/pkg/controller/http"
	"github.com/govbridge/tdabot/pkg/domain/types"
	"github.com/govbridge/tdabot/pkg/infra/db"
	"github.com/govbridge/tdabot/pkg/infra/jira"
	slackinfra "github.com/govbridge/tdabot/pkg/infra/slack"
	"github.com/govbridge/tdabot/pkg/templates"
	"github.com/govbridge/tdabot/pkg/usecase"
	"github.com/govbridge/tdabot/pkg/utils/metrics"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		slackCfg   config.Slack
		jiraCfg    config.Jira
		dbCfg      config.Database
		routingCfg config.Routing
		sentryCfg  config.Sentry
	)

	flags := serverCfg.Flags()
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, jiraCfg.Flags()...)
	flags = append(flags, dbCfg.Flags()...)
	flags = append(flags, routingCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if sentryCfg.DSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:     sentryCfg.DSN,
					Release: types.Version,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize sentry")
				}
				defer sentry.Flush(2 * time.Second)
			}

			channels, err := routingCfg.LoadChannelMap()
			if err != nil {
				return err
			}

			store, err := db.NewEventStore(dbCfg.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			tracker := jira.NewClient(jiraCfg.BaseURL, jiraCfg.Username, jiraCfg.Token, jira.FieldConfig{
				DecisionStatus: jiraCfg.DecisionStatusField,
				Classification: jiraCfg.ClassificationField,
			})
			chat := slackinfra.NewClient(slackCfg.Token)
			renderer := templates.New(routingCfg.TemplateDir)
			m := metrics.New()

			agendaUC := usecase.NewAgenda(tracker, chat, renderer, channels, jiraCfg.AgendaFilterID, jiraCfg.BaseURL, m)
			adrUC := usecase.NewADR(tracker, chat, renderer, channels, jiraCfg.BaseURL, m)
			scorecardUC := usecase.NewScorecard(tracker, chat, renderer, channels, jiraCfg.BaseURL, m)
			eventUC := usecase.NewEvent(store, m)

			server, err := controller.NewServer(
				ctx,
				agendaUC,
				adrUC,
				scorecardUC,
				eventUC,
				m,
				controller.WithAddr(serverCfg.Addr),
				controller.WithAPIKey(serverCfg.APIKey),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
					if sentryCfg.DSN != "" {
						sentry.CaptureException(err)
					}
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
