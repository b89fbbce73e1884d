package main

import (
	"context"
	"fmt"

	"github.com/procuramart/backoffice/internal/adapter/auth"
	"github.com/procuramart/backoffice/internal/adapter/config"
	"github.com/procuramart/backoffice/internal/adapter/handler/http"
	"github.com/procuramart/backoffice/internal/adapter/logger"
	"github.com/procuramart/backoffice/internal/adapter/storage"
	"github.com/procuramart/backoffice/internal/adapter/storage/repository"
	"github.com/procuramart/backoffice/internal/core/bulk"
	"github.com/procuramart/backoffice/internal/core/catalog"
	"github.com/procuramart/backoffice/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	matcher, err := catalog.NewMatcher(repo, log.Named("Catalog"))
	if err != nil {
		log.Error("catalog matcher creating error", zap.Error(err))
		return
	}

	importer, err := bulk.NewImporter(matcher, log.Named("Import"),
		bulk.WithMaxConcurrency(conf.Import.MaxConcurrency))
	if err != nil {
		log.Error("bulk importer creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, repo, tokenService, importer, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, orderHandler, userHandler, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
