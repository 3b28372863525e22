package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"librarian/internal/audit"
	"librarian/internal/catalog"
	"librarian/internal/config"
	"librarian/internal/database"
	auditdb "librarian/internal/database/audit"
	http_controllers "librarian/internal/http"
	"librarian/internal/scheduler"
	"librarian/internal/sessions"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT/SIGTERM, then drain with a timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Librarian v%s", version)

	if cfg.Catalog.APIKey == "" {
		log.Printf("WARNING: Catalog API key is not set. The index listing will show local books only. Set 'CATALOG_API_KEY' environment variable to enable enrichment.")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Get underlying SQL DB for the session store
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := sessions.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	// CSRF secret: use the configured one, or generate for this run
	var csrfSecret []byte
	if cfg.Session.Secret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Session.Secret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.Session.Secret)
		}
	} else {
		secret, err := sessions.GenerateSecret()
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		csrfSecret, _ = hex.DecodeString(secret)
		log.Printf("Generated session secret (set SESSION_SECRET to persist)")
	}

	// External catalog client for index-page enrichment
	catalogClient := catalog.NewScopusClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Query)
	if cfg.Audit.Dir != "" {
		catalogClient.SetAuditor(audit.NewAuditor(cfg.Audit.Dir))
	}

	// Audit trail of mutations, swept on a schedule
	auditRepo := auditdb.NewRepository(db.DB)
	auditService := audit.NewService(auditRepo)

	cleanupScheduler := scheduler.NewAuditCleanupScheduler(auditRepo, cfg.Audit.Schedule, cfg.Audit.RetentionDays)
	if err := cleanupScheduler.Start(); err != nil {
		log.Printf("WARNING: Failed to start audit cleanup scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Catalog:        catalogClient,
		AuditService:   auditService,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		KeepHistory:    cfg.Circulation.KeepHistory,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		cleanupScheduler.Stop()
	}

	Serve(router, cfg, onShutdown)
}
