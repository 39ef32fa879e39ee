package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tenderdesk/tenderdesk/internal/ai"
	"github.com/tenderdesk/tenderdesk/internal/auth"
	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/email"
	"github.com/tenderdesk/tenderdesk/internal/ratelimit"
	"github.com/tenderdesk/tenderdesk/internal/registry"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

// app holds the wired services shared by the subcommands.
type app struct {
	db     *gorm.DB
	tokens *auth.TokenManager
	cache  *service.CacheService

	auditLog      *service.AuthzAuditLogService
	users         *service.UserService
	tenants       *service.TenantService
	memberships   *service.MembershipService
	companies     *service.CompanyService
	invites       *service.InviteService
	registration  *service.RegistrationService
	clients       *service.ClientCompanyService
	tenders       *service.TenderService
	knowledge     *service.KnowledgeService
	bids          *service.BidService
	registry      *service.RegistryService
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := setupDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("setting up database: %w", err)
	}

	sender, err := email.NewEmailService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing email service: %w", err)
	}

	var completer ai.Completer = ai.Unconfigured{}
	if cfg.AI.APIKey != "" {
		client, err := ai.NewOpenAIClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, fmt.Errorf("initializing ai client: %w", err)
		}
		completer = client
	} else {
		slog.WarnContext(ctx, "AI_API_KEY not set, drafting is disabled")
	}

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	clientRepo := repository.NewClientCompanyRepository(db)
	tenderRepo := repository.NewTenderRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	bidRepo := repository.NewBidRepository(db)

	a := &app{
		db:     db,
		tokens: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryPeriod),
		cache:  service.NewCacheService(service.CacheConfig{Size: 4096, TTL: cfg.Registry.CacheTTL}),
	}
	a.auditLog = service.NewAuthzAuditLogService(repository.NewAuthzAuditLogRepository(db))
	a.users = service.NewUserService(userRepo, companyRepo, membershipRepo, a.auditLog)
	a.tenants = service.NewTenantService(membershipRepo)
	a.memberships = service.NewMembershipService(membershipRepo, a.auditLog)
	a.companies = service.NewCompanyService(companyRepo, a.auditLog, cfg)
	a.invites = service.NewInviteService(
		inviteRepo,
		companyRepo,
		userRepo,
		membershipRepo,
		sender,
		ratelimit.NewKeyed(ratelimit.PerHour(cfg.RateLimit.InvitesPerHour), cfg.RateLimit.InviteBurst),
		a.auditLog,
		cfg,
	)
	a.registration = service.NewRegistrationService(a.companies, a.invites, companyRepo, membershipRepo, sender, cfg)
	a.clients = service.NewClientCompanyService(clientRepo, a.auditLog)
	a.tenders = service.NewTenderService(tenderRepo, a.auditLog)
	a.knowledge = service.NewKnowledgeService(knowledgeRepo, a.auditLog)
	a.bids = service.NewBidService(bidRepo, tenderRepo, clientRepo, knowledgeRepo, membershipRepo, completer, a.auditLog, cfg)
	a.registry = service.NewRegistryService(
		registry.NewKvKClient(cfg.Registry.BaseURL, cfg.Registry.APIKey, cfg.UpstreamTimeout),
		a.cache,
		ratelimit.NewKeyed(ratelimit.PerMinute(cfg.RateLimit.LookupsPerMinute), cfg.RateLimit.LookupBurst),
		cfg,
	)
	return a, nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func setupDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
