package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	api "github.com/soat-kiosk/lanchonete/internal/api/http"
	"github.com/soat-kiosk/lanchonete/internal/domain"
	healthcheck "github.com/soat-kiosk/lanchonete/internal/health"
	"github.com/soat-kiosk/lanchonete/internal/metrics"
	"github.com/soat-kiosk/lanchonete/internal/storage/memory"
	"github.com/soat-kiosk/lanchonete/internal/storage/postgres"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

const shutdownTimeout = 5 * time.Second

// gateways bundles the two storage gateways plus the teardown of whatever
// backs them.
type gateways struct {
	produtos domain.ProdutoGateway
	pedidos  domain.PedidoGateway
	close    func()
}

// openGateways selects the storage backend by environment. The memory variant
// carries the demo seed the service ships for local runs.
func openGateways(ctx context.Context, cfg Config, logger *log.Entry, healthHandler *healthcheck.Handler) (gateways, error) {
	if cfg.UseMemoryStorage() {
		logger.Info("usando repositório em memória")
		produtos := memory.NewProdutoRepository()
		seedDemoCatalog(produtos, logger)
		return gateways{
			produtos: produtos,
			pedidos:  memory.NewPedidoRepository(),
			close:    func() {},
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.DBURL)
	if err != nil {
		return gateways{}, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return gateways{}, err
	}
	if healthHandler != nil {
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			return store.Ping(context.Background())
		}))
	}
	logger.Info("conectado ao postgres")
	return gateways{
		produtos: postgres.NewProdutoRepository(store),
		pedidos:  postgres.NewPedidoRepository(store),
		close: func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close postgres store")
			}
		},
	}, nil
}

// seedDemoCatalog stores the single demo product the in-memory variant ships
// with.
func seedDemoCatalog(gw domain.ProdutoGateway, logger *log.Entry) {
	ingredientes, err := domain.NewIngredientes([]string{"Carne", "Pao", "Alface"})
	if err != nil {
		logger.WithError(err).Warn("demo seed skipped")
		return
	}
	now := domain.NowTimestamp()
	produto, err := domain.NewProduto(
		0, "Hamburguer", "hamburguer.png", "hamburguer com uma carne e salada",
		domain.CategoriaLanche, 15.99, ingredientes, now, now,
	)
	if err != nil {
		logger.WithError(err).Warn("demo seed skipped")
		return
	}
	if _, err := gw.CreateProduto(produto); err != nil {
		logger.WithError(err).Warn("demo seed skipped")
	}
}

// Run starts the HTTP API plus the metrics/health server and blocks until the
// context is canceled or a server fails.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	healthHandler := healthcheck.NewHandler(Version)
	gws, err := openGateways(ctx, cfg, logger, healthHandler)
	if err != nil {
		return err
	}
	defer gws.close()

	pedidoMetrics := metrics.NewPedidoMetrics()
	pedidoGuard := usecase.NewPedidoGuard(gws.pedidos)
	produtoGuard := usecase.NewProdutoGuard(gws.produtos)

	produtoUC := usecase.NewProdutoUseCase(produtoGuard, nil)
	pedidoUC := usecase.NewPedidosEPagamentosUseCase(pedidoGuard, produtoGuard, pedidoMetrics, nil)
	preparacaoUC := usecase.NewPreparacaoEntregaUseCase(pedidoGuard, nil)

	handlers := api.NewHandlers(produtoUC, pedidoUC, preparacaoUC)
	router := api.NewRouter(handlers, cfg.APIKey)

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("API HTTP escutando em %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("sinal de parada recebido, encerrando o servidor HTTP")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer serves /metrics, /healthz and /livez.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("métricas em %s/metrics, health em %s/healthz", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP stops an HTTP server within the shutdown timeout.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
