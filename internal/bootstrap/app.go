package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"creditdispute-backend/internal/account"
	googleauth "creditdispute-backend/internal/auth"
	"creditdispute-backend/internal/disputes"
	"creditdispute-backend/internal/llm"
	openai "creditdispute-backend/internal/llm/openai"
	"creditdispute-backend/internal/reports"
	"creditdispute-backend/internal/scan"
	"creditdispute-backend/internal/shared/config"
	"creditdispute-backend/internal/shared/server"
	"creditdispute-backend/internal/shared/storage/db"
	"creditdispute-backend/internal/shared/storage/object"
	localstore "creditdispute-backend/internal/shared/storage/object/local"
	s3store "creditdispute-backend/internal/shared/storage/object/s3"
	"creditdispute-backend/internal/usage"
	"creditdispute-backend/internal/users"
)

// App holds shared dependencies built from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ReportsRepo   reports.Repo
	DisputesRepo  disputes.Repo
	TemplatesRepo disputes.TemplatesRepo
	UsersRepo     users.Repo

	ScanService     *scan.Service
	ReportsService  *reports.Service
	DisputesService *disputes.Service
	UsageService    *usage.Service
	UsersService    *users.Service

	ScanHandler     *scan.Handler
	ReportsHandler  *reports.Handler
	DisputesHandler *disputes.Handler
	UsageHandler    *usage.Handler
	UsersHandler    *users.Handler
	AccountHandler  *account.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		ScanHandler:    app.ScanHandler,
		ReportHandler:  app.ReportsHandler,
		DisputeHandler: app.DisputesHandler,
		UsageHandler:   app.UsageHandler,
		UserHandler:    app.UsersHandler,
		AccountHandler: app.AccountHandler,
		GoogleAuth:     app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var reportsRepo reports.Repo
	var disputesRepo disputes.Repo
	var templatesRepo disputes.TemplatesRepo
	var usersRepo users.Repo

	if app.DB != nil {
		reportsRepo = &reports.PGRepo{DB: app.DB}
		disputesRepo = &disputes.PGRepo{DB: app.DB}
		templatesRepo = &disputes.PGTemplatesRepo{DB: app.DB}
		usersRepo = &users.PGRepo{DB: app.DB}
	} else {
		reportsRepo = reports.NewMemoryRepo()
		disputesRepo = disputes.NewMemoryRepo()
		templatesRepo = disputes.NewMemoryTemplatesRepo()
		usersRepo = users.NewMemoryRepo()
	}

	var usageSvc *usage.Service
	if app.DB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(app.DB))
	} else {
		usageSvc = usage.NewService()
	}

	llmClient := llm.Completer(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		openaiClient, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel, app.Config.LLMMaxTokens)
		if err != nil {
			return err
		}
		llmClient = openaiClient
	}

	scanSvc := &scan.Service{
		LLM:            llmClient,
		Usage:          usageSvc,
		MaxInputTokens: app.Config.ScanMaxTokens,
	}

	reportsSvc := reports.NewService(reportsRepo, app.Store)
	disputesSvc := &disputes.Service{Repo: disputesRepo, Templates: templatesRepo}
	usersSvc := users.NewService(usersRepo)
	accountSvc := account.NewService(reportsRepo, disputesRepo)

	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		usersSvc,
	)

	app.ReportsRepo = reportsRepo
	app.DisputesRepo = disputesRepo
	app.TemplatesRepo = templatesRepo
	app.UsersRepo = usersRepo
	app.ScanService = scanSvc
	app.ReportsService = reportsSvc
	app.DisputesService = disputesSvc
	app.UsageService = usageSvc
	app.UsersService = usersSvc
	app.ScanHandler = scan.NewHandler(scanSvc)
	app.ReportsHandler = reports.NewHandler(reportsSvc)
	app.DisputesHandler = disputes.NewHandler(disputesSvc)
	app.UsageHandler = usage.NewHandler(usageSvc)
	app.UsersHandler = users.NewHandler(usersSvc)
	app.AccountHandler = account.NewHandler(accountSvc)
	app.GoogleAuth = googleAuthSvc

	return nil
}
