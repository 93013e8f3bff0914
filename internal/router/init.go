package router

import (
	"community-board/internal/application"
	"community-board/internal/container"
	pginfra "community-board/internal/infrastructure/postgres"
	handlers "community-board/internal/interface/http"
	"community-board/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewAuthService(repo, container.GetJWT(), container.GetLogger())
	return modules.NewAuthModule(handlers.NewAuthHandler(svc, container.GetLogger()))
}

func buildNoticeModule() *modules.NoticeModule {
	cfg := container.GetConfig()
	repo := pginfra.NewNoticeRepository(container.GetPGPool())

	svc := &application.NoticeService{
		Repo:      repo,
		Redis:     container.GetRedis(),
		CacheTTL:  cfg.ListCacheTTL,
		ES:        container.GetES(),
		ESIndex:   cfg.ESNoticesIndex,
		Pub:       container.GetRabbitPub(),
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		Logger:    container.GetLogger(),
	}

	return modules.NewNoticeModule(handlers.NewNoticeHandler(svc, container.GetLogger()), container.GetJWT())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildNoticeModule())
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
