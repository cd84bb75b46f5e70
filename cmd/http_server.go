package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/membership-management/internal"
	"github.com/frahmantamala/membership-management/internal/admin"
	adminPostgres "github.com/frahmantamala/membership-management/internal/admin/postgres"
	"github.com/frahmantamala/membership-management/internal/auth"
	authPostgres "github.com/frahmantamala/membership-management/internal/auth/postgres"
	"github.com/frahmantamala/membership-management/internal/department"
	departmentPostgres "github.com/frahmantamala/membership-management/internal/department/postgres"
	"github.com/frahmantamala/membership-management/internal/email"
	"github.com/frahmantamala/membership-management/internal/passwordreset"
	passwordresetPostgres "github.com/frahmantamala/membership-management/internal/passwordreset/postgres"
	"github.com/frahmantamala/membership-management/internal/registration"
	registrationPostgres "github.com/frahmantamala/membership-management/internal/registration/postgres"
	"github.com/frahmantamala/membership-management/internal/subscription"
	subscriptionPostgres "github.com/frahmantamala/membership-management/internal/subscription/postgres"
	"github.com/frahmantamala/membership-management/internal/transport"
	"github.com/frahmantamala/membership-management/internal/transport/rest"
	"github.com/frahmantamala/membership-management/internal/user"
	userPostgres "github.com/frahmantamala/membership-management/internal/user/postgres"
	"github.com/frahmantamala/membership-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Format)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx pool behind the sqlx handle
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	hasher := auth.NewPasswordHasher(config.Security.BCryptCost)

	tokenGen, err := auth.NewJWTTokenGenerator(
		config.Security.JWTSecret,
		config.Security.JWTAlgorithm,
		config.Security.TokenLifetime,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token generator: %w", err)
	}

	evidenceStore, err := registration.NewDiskEvidenceStore(config.Upload.PaymentProofDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize evidence store: %w", err)
	}

	emailSender := email.NewSMTPSender(config.SMTP, appLogger)
	otpExpiry := time.Duration(config.Security.OTPExpiryMinutes) * time.Minute

	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, hasher, appLogger)
	registrationService := registration.NewService(registrationPostgres.NewRepository(gormDB), hasher, evidenceStore, appLogger)
	adminService := admin.NewService(adminPostgres.NewRepository(gormDB), appLogger)
	userService := user.NewService(userPostgres.NewRepository(gormDB), appLogger)
	resetService := passwordreset.NewService(passwordresetPostgres.NewRepository(gormDB), hasher, emailSender, otpExpiry, appLogger)
	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(gormDB), appLogger)
	subscriptionService := subscription.NewService(subscriptionPostgres.NewSubscriptionTypeRepository(gormDB), appLogger)

	baseHandler := transport.NewBaseHandler(appLogger)

	handlers := rest.Handlers{
		Auth:          auth.NewHandler(authService),
		Registration:  registration.NewHandler(registrationService),
		User:          user.NewHandler(userService),
		Admin:         admin.NewHandler(adminService),
		PasswordReset: passwordreset.NewHandler(resetService),
		Department:    department.NewHandler(baseHandler, departmentService),
		Subscription:  subscription.NewHandler(baseHandler, subscriptionService),
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   appLogger,
	}, nil
}

// initDB opens and verifies the pgx-backed connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
