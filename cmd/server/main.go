package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/freelance-ledger/internal/config"
	"github.com/ignatzorin/freelance-ledger/internal/db"
	domain "github.com/ignatzorin/freelance-ledger/internal/domain/repository"
	httpHandlers "github.com/ignatzorin/freelance-ledger/internal/http/handlers"
	httpRouter "github.com/ignatzorin/freelance-ledger/internal/http/router"
	"github.com/ignatzorin/freelance-ledger/internal/logger"
	"github.com/ignatzorin/freelance-ledger/internal/repository"
	"github.com/ignatzorin/freelance-ledger/internal/repository/memory"
	"github.com/ignatzorin/freelance-ledger/internal/service"
	"github.com/ignatzorin/freelance-ledger/internal/ws"
)

// stores хранилища, с которыми работают сервисы.
type stores struct {
	ledger    domain.LedgerStore
	reports   domain.ReportStore
	contracts domain.ContractStore
	profiles  domain.ProfileStore
	health    httpHandlers.Pinger
	close     func()
}

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось подготовить хранилище")
	}
	defer st.close()

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	hub := ws.NewHub()

	settlementService := service.NewSettlementService(st.ledger, hub)
	reportService := service.NewReportService(st.reports, cfg.ReportDefaultLimit)
	contractService := service.NewContractService(st.contracts)

	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Settlement: httpHandlers.NewSettlementHandler(settlementService),
		Report:     httpHandlers.NewReportHandler(reportService),
		Contract:   httpHandlers.NewContractHandler(contractService),
		WS:         httpHandlers.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
		Health:     httpHandlers.NewHealthHandler(st.health),
	}, tokenManager, st.profiles)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Log.WithField("port", cfg.HTTPPort).WithField("store", cfg.StoreDriver).Info("main: HTTP сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Завершаем сервер при получении сигнала или падении соседней горутины.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("main: сервер завершился с ошибкой")
		return
	}
	logger.Log.Info("main: сервер остановлен")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.New()
		memory.SeedDemo(store)
		logger.Log.Warn("main: используется хранилище в памяти с демо-данными")
		return &stores{
			ledger:    store,
			reports:   store,
			contracts: store,
			profiles:  store,
			close:     func() {},
		}, nil
	}

	pool := db.DefaultPoolOptions
	pool.MaxOpenConns = cfg.DBMaxOpenConns
	pool.MaxIdleConns = cfg.DBMaxIdleConns

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, pool)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		safeClose(dbConn)
		return nil, err
	}

	return &stores{
		ledger:    repository.NewLedgerRepository(dbConn, cfg.TxMaxRetries),
		reports:   repository.NewReportRepository(dbConn),
		contracts: repository.NewContractRepository(dbConn),
		profiles:  repository.NewProfileRepository(dbConn),
		health:    dbConn,
		close:     func() { safeClose(dbConn) },
	}, nil
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
