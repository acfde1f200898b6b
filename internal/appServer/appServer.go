package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velvet-labs/velvet/config"
	"github.com/velvet-labs/velvet/internal/database"
	"github.com/velvet-labs/velvet/internal/database/memory"
	pgrepo "github.com/velvet-labs/velvet/internal/database/postgres"
	"github.com/velvet-labs/velvet/internal/database/rediscache"
	"github.com/velvet-labs/velvet/internal/entity"
	"github.com/velvet-labs/velvet/internal/eventbus"
	"github.com/velvet-labs/velvet/internal/service"
	"github.com/velvet-labs/velvet/internal/transport"
	"github.com/velvet-labs/velvet/internal/worker"
	"github.com/velvet-labs/velvet/pkg/keylock"
	"github.com/velvet-labs/velvet/pkg/postgres"
	"github.com/velvet-labs/velvet/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewServer wires the whole application together and blocks until SIGTERM.
func NewServer(cfg *config.Config) {

	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	repo := buildRepository(cfg, logger)

	locks := keylock.New()
	bus := eventbus.New(logger, cfg.Bus.BufferSize)
	defer bus.Close()

	eventService := service.NewEventService(repo.Events, locks)
	attendanceService := service.NewAttendanceService(repo.Events, repo.Attendees, repo.Users, bus, locks)
	gigService := service.NewGigService(repo.Availabilities, repo.Applications, repo.Events, locks, logger)
	walletService := service.NewWalletService(repo.Wallets, locks, cfg.Wallet.DefaultCurrency, logger)
	splitService := service.NewSplitPaymentService(repo.Splits, locks)
	revenueService := service.NewRevenueService(repo.Distributions, repo.Events, cfg.Revenue.PlatformFeePct)
	noShowService := service.NewNoShowService(repo.Events, repo.Attendees, repo.Users, locks, service.NoShowPolicy{
		DebtCents:        cfg.Penalty.DebtCents,
		Currency:         cfg.Wallet.DefaultCurrency,
		ReputationPoints: cfg.Penalty.ReputationPoints,
	}, logger)
	userService := service.NewUserService(repo.Users, bus, locks, cfg.Wallet.DefaultCurrency)

	// choreography: registration provisions a wallet, check-in feeds the
	// invite unlock
	bus.SubscribeUserCreated(func(ctx context.Context, ev entity.UserCreated) error {
		return walletService.ProvisionWallet(ctx, ev.UserID)
	})
	bus.SubscribeUserAttended(func(ctx context.Context, ev entity.UserAttendedEvent) error {
		return userService.HandleEventAttended(ctx, ev.UserID, ev.EventID)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	noShowWorker := worker.NewNoShowWorker(noShowService, cfg.Worker.NoShowInterval)
	go noShowWorker.Start(ctx)

	handlers := &transport.Handlers{
		Events:     transport.NewEventHandler(eventService),
		Attendance: transport.NewAttendanceHandler(attendanceService, noShowService),
		Gigs:       transport.NewGigHandler(gigService),
		Wallets:    transport.NewWalletHandler(walletService),
		Splits:     transport.NewSplitHandler(splitService),
		Revenue:    transport.NewRevenueHandler(revenueService),
		Users:      transport.NewUserHandler(userService),
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handlers, cfg.Server.RequestTimeout)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// buildRepository prefers postgres and falls back to the in-memory store so
// the app still runs without infrastructure.
func buildRepository(cfg *config.Config, logger *logrus.Logger) *database.Repository {
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Warnf("postgres unavailable (%v), using in-memory repositories", err)
		return memory.NewRepository()
	}

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	repo := pgrepo.NewRepository(db)

	if cfg.Redis.Enabled {
		client, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warnf("redis unavailable (%v), running without event cache", err)
			return repo
		}
		repo.Events = rediscache.NewEventCache(repo.Events, client, cfg.Redis.CacheTTL, logger)
	}
	return repo
}
