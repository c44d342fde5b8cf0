package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/messaging/kafka"
	"github.com/soat-kiosk/lanchonete/internal/metrics"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

// RunListener starts the payment-notification consumer and blocks until the
// context is canceled. It shares the storage selection with the API but runs
// as its own process.
func RunListener(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "listener")

	gws, err := openGateways(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer gws.close()

	pedidoMetrics := metrics.NewPedidoMetrics()
	pedidoGuard := usecase.NewPedidoGuard(gws.pedidos)
	produtoGuard := usecase.NewProdutoGuard(gws.produtos)
	pedidoUC := usecase.NewPedidosEPagamentosUseCase(pedidoGuard, produtoGuard, pedidoMetrics, nil)

	consumer, err := kafka.NewPagamentoConsumer(cfg.Brokers(), cfg.KafkaGroupID, cfg.KafkaTopic, pedidoUC, pedidoMetrics)
	if err != nil {
		return err
	}
	if err := consumer.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("sinal de parada recebido, encerrando o consumidor")
	if err := consumer.Stop(); err != nil {
		logger.WithError(err).Warn("consumer stopped with error")
	}
	return ctx.Err()
}
