package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"moneyguard/internal/audit"
	"moneyguard/internal/clients"
	"moneyguard/internal/device"
	"moneyguard/internal/jwtsession"
	"moneyguard/internal/platform/config"
	"moneyguard/internal/platform/httpserver"
	"moneyguard/internal/platform/logger"
	"moneyguard/internal/platform/metrics"
	platformredis "moneyguard/internal/platform/redis"
	"moneyguard/internal/prefs"
	"moneyguard/internal/risk"
	"moneyguard/internal/session"
	"moneyguard/internal/transaction"
	httptransport "moneyguard/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business rules live
// in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Preference store: redis when configured, in-process otherwise.
	var prefsStore prefs.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		prefsStore = prefs.NewRedis(redisClient.Client, "moneyguard")
		log.Info("prefs store: redis")
	} else {
		prefsStore = prefs.NewMemory()
		log.Info("prefs store: memory")
	}

	// Audit store: postgres when configured, in-process otherwise.
	var auditStore audit.Store
	var listStore httptransport.AuditReader
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		pg := audit.NewPostgres(db)
		auditStore, listStore = pg, pg
		log.Info("audit store: postgres")
	} else {
		mem := audit.NewInMemoryStore()
		auditStore, listStore = mem, mem
		log.Info("audit store: memory")
	}

	publisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithLogger(log),
	)
	defer publisher.Close()

	mtr := metrics.New()

	bank := clients.NewBank(cfg.Upstream.BankURL, cfg.Upstream.Timeout)
	protection := clients.NewProtection(cfg.Upstream.ProtectionURL, cfg.Upstream.Timeout)

	var scanner risk.Source
	if cfg.Upstream.ScanURL != "" {
		scanner = clients.NewScanner(cfg.Upstream.ScanURL, cfg.Upstream.Timeout)
	} else {
		scanner = risk.SourceFunc(func(context.Context) (risk.ScanReport, error) {
			return risk.ScanReport{Status: risk.StatusSafe}, nil
		})
	}

	sessions, err := session.New(session.Deps{
		Bank:        bank,
		Registrar:   protection,
		Policy:      protection,
		Credentials: protection,
		Location:    locationAdapter{protection},
		Prelaunch:   scanner,
		Prefs:       prefsStore,
	}, session.Config{
		PartnerBankID:                       cfg.PartnerBankID,
		CredentialDomain:                    cfg.CredentialDomain,
		TreatUnknownCredentialAsCompromised: cfg.TreatUnknownCredentialAsCompromised,
	},
		session.WithLogger(log),
		session.WithMetrics(mtr),
		session.WithAuditPublisher(publisher),
	)
	if err != nil {
		return err
	}

	transactions := transaction.New(prefsStore, scanner, cfg.DefaultHighRiskThreshold,
		transaction.WithLogger(log),
		transaction.WithMetrics(mtr),
		transaction.WithAuditPublisher(publisher),
	)

	tokens := jwtsession.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, 0)
	devices := device.NewService(cfg.DeviceFingerprints)

	handler := httptransport.New(sessions, transactions, tokens,
		httptransport.NewTokenValidator(tokens), devices, listStore, cfg.AdminToken, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting moneyguard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// locationAdapter renames Protection's location method onto the
// session.LocationService port; Protection.Check is taken by the
// credential port.
type locationAdapter struct {
	p *clients.Protection
}

func (a locationAdapter) Check(ctx context.Context, token string) ([]session.LocationFinding, error) {
	return a.p.UnusualLocations(ctx, token)
}
