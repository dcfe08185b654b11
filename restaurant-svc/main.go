package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-backend/config"
	httpapi "restaurant-backend/restaurant-svc/internal/api/http"
	"restaurant-backend/restaurant-svc/internal/auth"
	"restaurant-backend/restaurant-svc/internal/service"
	"restaurant-backend/restaurant-svc/internal/storage"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	app := &cli.App{
		Name:  "restaurant-svc",
		Usage: "restaurant reservations, menu and takeaway API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply schema migrations before serving",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "memory",
						Usage: "keep all data in memory instead of PostgreSQL, Redis and Kafka",
					},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply schema migrations and exit",
				Action: migrate,
			},
			{
				Name:   "reconcile",
				Usage:  "consume reservation events and release stale tables",
				Action: reconcile,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("restaurant-svc failed")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.SetupLogging(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deps, closeDeps, err := openBackend(c, cfg)
	if err != nil {
		return err
	}
	defer closeDeps()

	tokens := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var policy service.TransitionPolicy = service.AnyTransition{}
	if cfg.TakeawayStrictTransitions {
		policy = service.StrictTransitions
	}

	repo := deps.repo
	users := service.NewUserService(repo, tokens, tokens)
	handler := httpapi.NewHandler(
		service.NewTableService(repo, repo),
		service.NewReservationService(repo, repo, deps.locker, deps.publisher),
		service.NewMenuService(repo),
		service.NewTakeawayService(repo, repo, policy, service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, deps.publisher),
		users,
		tokens,
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.HTTPAddr).Info("restaurant-svc starting")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// repository is everything a store has to persist.
type repository interface {
	service.TableRepository
	service.ReservationRepository
	service.MenuRepository
	service.TakeawayRepository
	service.UserRepository
}

type backend struct {
	repo      repository
	locker    service.SlotLocker
	publisher service.EventPublisher
}

func openBackend(c *cli.Context, cfg *config.Config) (*backend, func(), error) {
	if c.Bool("memory") {
		log.Warn("using in-memory store, data is lost on exit")
		return &backend{repo: storage.NewMemoryStore()}, func() {}, nil
	}

	db := config.MustInitPostgres(cfg)
	if c.Bool("migrate") {
		if err := storage.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	redisClient := config.MustInitRedis(cfg)
	writer := config.NewKafkaWriter(cfg)

	closeAll := func() {
		writer.Close()
		redisClient.Close()
		db.Close()
	}
	return &backend{
		repo:      storage.NewPostgresRepository(db),
		locker:    storage.NewRedisSlotLocker(redisClient, cfg.SlotLockTTL),
		publisher: storage.NewKafkaPublisher(writer),
	}, closeAll, nil
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	if err := storage.Migrate(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func reconcile(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	reader := config.NewKafkaReader(cfg)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reconciler := service.NewReconciler(reader, storage.NewPostgresRepository(db))
	return reconciler.Start(ctx)
}
