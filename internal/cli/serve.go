package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/oauth2"

	adapthttp "logyourbody/internal/adapter/http"
	"logyourbody/internal/adapter/memory"
	"logyourbody/internal/adapter/postgres"
	adapts3 "logyourbody/internal/adapter/s3"
	"logyourbody/internal/app"
	"logyourbody/internal/cache"
	"logyourbody/internal/config"
	"logyourbody/internal/domain"
	"logyourbody/internal/logging"
	"logyourbody/internal/telemetry"
)

const sessionPruneInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// storage bundles the repositories of one backend.
type storage struct {
	metrics  domain.MetricRepository
	photos   domain.PhotoRepository
	profiles domain.ProfileRepository
	users    domain.UserRepository
	sessions domain.SessionRepository
	close    func() error
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx); err != nil {
				return nil, multierr.Append(err, db.Close())
			}
		}
		return &storage{
			metrics:  db,
			photos:   db,
			profiles: db,
			users:    db,
			sessions: postgres.NewSessionRepo(db),
			close:    db.Close,
		}, nil
	default:
		log.Warnln("using in-memory storage, data is lost on restart")
		db := memory.New()
		return &storage{
			metrics:  db,
			photos:   db,
			profiles: db,
			users:    db,
			sessions: db.NewSessionRepo(),
			close:    func() error { return nil },
		}, nil
	}
}

// photoResolver presigns photo references when a bucket is configured. The
// cache entries expire at half the presign TTL so a cached URL always has
// time left when the client fetches it.
func photoResolver(ctx context.Context, cfg *config.Config, tm *telemetry.Manager) (domain.PhotoURLResolver, error) {
	if cfg.PhotoBucket == "" {
		return domain.PassthroughResolver{}, nil
	}
	s3Resolver, err := adapts3.NewFromDefaultConfig(ctx, cfg.PhotoRegion, cfg.PhotoEndpoint, cfg.PhotoBucket, cfg.PresignTTL())
	if err != nil {
		return nil, fmt.Errorf("photo resolver: %w", err)
	}
	log.Debugf("presigning photos from bucket [%s] for %s", cfg.PhotoBucket, s3Resolver.TTL())
	return cache.NewURLCache(s3Resolver, cfg.URLCacheSizeMB, s3Resolver.TTL()/2, tm), nil
}

func oidcConfig(ctx context.Context, cfg *config.Config) (adapthttp.OIDCConfig, error) {
	if !cfg.OIDC.Enabled {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, cfg.OIDC.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, fmt.Errorf("oidc provider %s: %w", cfg.OIDC.Issuer, err)
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := config.Load(configPath, envName)
	if err != nil {
		return err
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})
	log.Warnf("---->> running in [%s] environment", envName)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, st.close()) }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tm := telemetry.NewManager("logyourbody", "server", reg)

	resolver, err := photoResolver(ctx, cfg, tm)
	if err != nil {
		return err
	}
	sso, err := oidcConfig(ctx, cfg)
	if err != nil {
		return err
	}

	profiles := app.NewProfileService(st.profiles)
	timelines := app.NewTimelineService(st.metrics, st.photos, profiles, resolver)
	timelines.SetObserver(tm)

	srv := adapthttp.New(adapthttp.Services{
		Auth:     app.NewAuthService(st.users, st.sessions),
		Metrics:  app.NewMetricService(st.metrics, profiles),
		Photos:   app.NewPhotoService(st.photos),
		Profiles: profiles,
		Timeline: timelines,
		Export:   app.NewExportService(st.metrics, st.photos, profiles),
	}, sso, tm, reg)
	if cfg.DisableAuth {
		log.Warnln("authentication disabled, all requests act as user 1")
		srv = srv.WithoutAuth()
	}
	if cfg.TrustForwardAuth {
		log.Warnln("trusting Remote-User and X-Forwarded-For from the reverse proxy")
		srv = srv.WithForwardAuth()
	}

	go pruneSessions(ctx, st.sessions, sessionPruneInterval)

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		Addr:         cfg.Addr(),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	chServeErr := make(chan error, 1)
	go func() {
		log.Infof(" > server listening on: [%s]", cfg.Addr())
		chServeErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-chServeErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Warnln("shutdown signal received ...")
	}

	gracefulShutdown(httpServer)
	return nil
}

func gracefulShutdown(httpServer *http.Server) {
	maxWaitDuration := time.Second * 10
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
	}
	log.Warnln("server shut down")
}

// pruneSessions deletes expired sessions every interval until ctx is done.
func pruneSessions(ctx context.Context, sessions domain.SessionRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sessions.DeleteExpired(ctx); err != nil {
				log.Errorf("prune sessions: %s", err)
			}
		}
	}
}
