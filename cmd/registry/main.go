package main

import (
	"context"

	"github.com/sirpyerre/people-registry/internal/cli"
	"github.com/sirpyerre/people-registry/internal/core/service"
	"github.com/sirpyerre/people-registry/internal/infrastructure/audit"
	"github.com/sirpyerre/people-registry/internal/infrastructure/config"
	"github.com/sirpyerre/people-registry/internal/infrastructure/db/flatfile"
	"github.com/sirpyerre/people-registry/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx := context.Background()

	personRepo := flatfile.NewPersonRepository(cfg.PeopleFile, log)
	userRepo := flatfile.NewUserRepository(cfg.UsersFile, log)
	auditLog := audit.NewFileLog(cfg.AuditFile)

	if err := userRepo.Load(ctx); err != nil {
		log.Fatal().Err(err).Str("path", cfg.UsersFile).Msg("failed to load users")
	}

	people := service.NewPersonService(personRepo, log)
	if err := people.Load(ctx); err != nil {
		log.Fatal().Err(err).Str("path", cfg.PeopleFile).Msg("failed to load people")
	}

	auth := service.NewAuthService(userRepo, auditLog, cfg.LoginAttempts, log)

	session := cli.NewSession(people, userRepo, auth, auditLog, cli.Options{RetryDelay: cfg.RetryDelay})
	if err := session.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("session terminated")
	}
}
