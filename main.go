// icanmatch serves the I-CAN matchmaking API: swipe recommendations of jobs
// and certifications, the certification cart, and the career coach.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streadway/amqp"
	"google.golang.org/adk/session"

	"github.com/muhammadolammi/icanmatch/internal/advisor"
	"github.com/muhammadolammi/icanmatch/internal/api"
	"github.com/muhammadolammi/icanmatch/internal/cart"
	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/config"
	"github.com/muhammadolammi/icanmatch/internal/cv"
	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/notify"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("config error")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("startup failed")
	}
	defer app.Close()
	go app.Sessions.RunSweeper(ctx, min(cfg.API.SessionIdleTimeout, time.Minute))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.API.WaitTimeout + 20*time.Second,
	}

	go func() {
		logging.Info().Int("port", cfg.Server.Port).Bool("offline", cfg.Gemini.Offline()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown error")
	}
	logging.Info().Msg("stopped")
}

func newApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, Catalog: catalog.Default()}

	var coachAgent advisor.Agent
	if !cfg.Gemini.Offline() {
		gen, err := recommend.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		app.Generator = gen

		coach, err := GetCoachAgent(ctx, cfg.Gemini.APIKey, cfg.Gemini.AgentModel)
		if err != nil {
			return nil, err
		}
		runnerAgent, err := advisor.NewRunnerAgent(coach, session.InMemoryService())
		if err != nil {
			return nil, err
		}
		coachAgent = runnerAgent
	} else {
		logging.Warn().Msg("GOOGLE_API_KEY not set, serving canned recommendations and advice")
	}

	notifiers := notify.Multi{notify.LogNotifier{}}
	if cfg.RabbitMQ.URL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
		}
		app.RabbitConn = conn
		if err := declareExchange(conn, cfg.RabbitMQ.Exchange); err != nil {
			conn.Close()
			return nil, err
		}
		notifiers = append(notifiers, notify.NewAMQPNotifier(notify.ConnDialer(conn), cfg.RabbitMQ.Exchange))
	}
	app.Notifier = notifiers

	var cvs advisor.CVReader
	if cfg.R2.Enabled() {
		store, err := cv.NewR2Store(ctx, cv.R2Config{
			AccountID: cfg.R2.AccountID,
			Bucket:    cfg.R2.Bucket,
			AccessKey: cfg.R2.AccessKey,
			SecretKey: cfg.R2.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		app.CVs = store
		cvs = store
	}

	app.Source = recommend.NewSource(app.Generator, recommend.WithMockDelay(cfg.Gemini.MockLatency))
	app.Carts = cart.NewRegistry(app.Catalog.Certifications)
	app.Sessions = swipe.NewRegistry(swipe.Deps{
		Source:   app.Source,
		Catalog:  app.Catalog,
		Notifier: app.Notifier,
	}, swipe.WithIdleTimeout(cfg.API.SessionIdleTimeout))
	app.Coach = advisor.NewCoach(coachAgent, cvs, advisor.WithMockDelay(cfg.Gemini.MockLatency))
	app.Matcher = advisor.NewMatcher(app.Generator, advisor.WithMockDelay(cfg.Gemini.MockLatency))

	app.Handler = api.NewRouter(api.NewHandler(api.Deps{
		Catalog:     app.Catalog,
		Sessions:    app.Sessions,
		Carts:       app.Carts,
		Coach:       app.Coach,
		Matcher:     app.Matcher,
		WaitTimeout: cfg.API.WaitTimeout,
	}), api.RouterConfig{
		CORSOrigins: cfg.API.CORSOrigins,
		RateLimit:   cfg.API.RateLimit,
	})
	return app, nil
}

func declareExchange(conn *amqp.Connection, name string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	return nil
}
