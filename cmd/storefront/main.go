// Storefront multi-tenant: páginas server-rendered por subdominio,
// carrito por sesión, onboarding de renters y passthrough de catálogo.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/storefront/internal/auth"
	"github.com/dropDatabas3/storefront/internal/cache"
	"github.com/dropDatabas3/storefront/internal/cart"
	"github.com/dropDatabas3/storefront/internal/catalog"
	"github.com/dropDatabas3/storefront/internal/config"
	"github.com/dropDatabas3/storefront/internal/email"
	admctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/admin"
	cartctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/cart"
	catctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/catalog"
	contactctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/contact"
	healthctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/health"
	onbctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/onboarding"
	pagesctrl "github.com/dropDatabas3/storefront/internal/httpx/controllers/pages"
	"github.com/dropDatabas3/storefront/internal/httpx/router"
	admsvc "github.com/dropDatabas3/storefront/internal/httpx/services/admin"
	cartsvc "github.com/dropDatabas3/storefront/internal/httpx/services/cart"
	contactsvc "github.com/dropDatabas3/storefront/internal/httpx/services/contact"
	onbsvc "github.com/dropDatabas3/storefront/internal/httpx/services/onboarding"
	"github.com/dropDatabas3/storefront/internal/metrics"
	"github.com/dropDatabas3/storefront/internal/observability/logger"
	"github.com/dropDatabas3/storefront/internal/onboarding"
	"github.com/dropDatabas3/storefront/internal/rate"
	"github.com/dropDatabas3/storefront/internal/security/secretbox"
	"github.com/dropDatabas3/storefront/internal/tenant/fsload"
)

func main() {
	cfgPath := flag.String("config", "config/config.yaml", "ruta al config YAML")
	flag.Parse()

	// .env es opcional; las env vars del sistema siempre pisan al YAML.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using system environment: %v", err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "storefront",
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.L()

	if err := metrics.Register(nil); err != nil {
		lg.Fatal("metrics registration failed", logger.Err(err))
	}

	if cfg.Security.SecretBoxMasterKey != "" {
		if err := secretbox.SetMasterKey(cfg.Security.SecretBoxMasterKey); err != nil {
			lg.Fatal("secretbox key invalid", logger.Err(err))
		}
	}

	// ─── Infraestructura compartida ───

	cacheClient, err := cache.New(cache.Config{
		Driver:     cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: config.Dur(cfg.Cache.Memory.DefaultTTL),
	})
	if err != nil {
		lg.Fatal("cache init failed", logger.Err(err))
	}
	defer func() { _ = cacheClient.Close() }()

	loader := fsload.New(cfg.Tenancy.Dir,
		fsload.WithTTL(config.Dur(cfg.Tenancy.ConfigTTL)),
		fsload.WithRegistryFile(cfg.Tenancy.RegistryFile),
	)

	catalogClient := catalog.New(cfg.Catalog.BaseURL, config.Dur(cfg.Catalog.Timeout))

	var globalSMTP *email.SMTPConfig
	if cfg.SMTP.Host != "" {
		globalSMTP = &email.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromEmail: cfg.SMTP.From,
			TLSMode:   smtpTLSMode(cfg.SMTP.TLS),
		}
	}
	mailer := email.NewMailer(globalSMTP)

	profiles, err := buildProfileStore(cfg)
	if err != nil {
		lg.Fatal("profile store init failed", logger.Err(err))
	}
	defer func() { _ = profiles.Close() }()

	issuer := auth.NewTokenIssuer(cfg.JWT.Issuer, cfg.JWT.Secret, config.Dur(cfg.JWT.AccessTTL))
	otp := auth.NewOTPService(cacheClient, config.Dur(cfg.OTP.TTL), cfg.OTP.Digits)

	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		limiter = buildLimiter(cfg, cacheClient)
	}

	// ─── Services y controllers ───

	cartStore := cart.NewStore(cacheClient, config.Dur(cfg.Cart.TTL))

	cartService := cartsvc.NewService(cartsvc.Deps{Store: cartStore})
	onbService := onbsvc.NewService(onbsvc.Deps{
		OTP:      otp,
		Tokens:   issuer,
		Profiles: profiles,
		Mailer:   mailer,
	})
	contactService := contactsvc.NewService(contactsvc.Deps{Mailer: mailer})
	revalidateService := admsvc.NewRevalidateService(admsvc.Deps{
		Loader: loader,
		Secret: cfg.Revalidation.Secret,
	})

	secureCookies := cfg.App.Env == "prod"

	handler := router.New(router.Deps{
		Loader:     loader,
		RootDomain: cfg.Tenancy.RootDomain,
		Issuer:     issuer,

		Pages:      pagesctrl.NewController(),
		Catalog:    catctrl.NewController(catalogClient),
		Cart:       cartctrl.NewController(cartService, cfg.Cart.CookieName, config.Dur(cfg.Cart.TTL), secureCookies),
		OTP:        onbctrl.NewOTPController(onbService),
		Profile:    onbctrl.NewProfileController(onbService),
		Contact:    contactctrl.NewController(contactService),
		Revalidate: admctrl.NewRevalidateController(revalidateService),
		Health:     healthctrl.NewController(cacheClient, loader),

		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})

	// ─── Server + graceful shutdown ───

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("storefront listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("root_domain", cfg.Tenancy.RootDomain),
			logger.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", logger.Err(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown incomplete", logger.Err(err))
	}
}

// buildProfileStore elige el backend de perfiles según config.
func buildProfileStore(cfg *config.Config) (onboarding.ProfileStore, error) {
	switch cfg.Storage.Driver {
	case "pg":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return onboarding.NewPGStore(ctx,
			cfg.Storage.Postgres.DSN,
			cfg.Storage.Postgres.MaxOpenConns,
			config.Dur(cfg.Storage.Postgres.ConnMaxLifetime),
		)
	default:
		return onboarding.NewMemoryStore(), nil
	}
}

// buildLimiter usa redis si el cache lo expone; sino fixed window en memoria.
func buildLimiter(cfg *config.Config, c cache.Client) rate.Limiter {
	window := config.Dur(cfg.Rate.Window)
	if rc, ok := c.(interface{ Raw() *rdb.Client }); ok {
		return rate.NewRedisLimiter(rc.Raw(), "rl:", cfg.Rate.MaxRequests, window)
	}
	return rate.NewMemoryLimiter(cfg.Rate.MaxRequests, window)
}

func smtpTLSMode(mode string) string {
	switch mode {
	case "always":
		return "starttls"
	case "never":
		return "none"
	default:
		return "auto"
	}
}
