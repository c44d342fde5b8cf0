package kafka

import (
	"context"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/domain"
	"github.com/soat-kiosk/lanchonete/internal/metrics"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

// PagamentoAplicador is the slice of the order use-case the consumer needs.
type PagamentoAplicador interface {
	AtualizaPagamento(info usecase.InfoPagamento) (domain.Pedido, error)
}

// PagamentoConsumer subscribes to the payment-notification queue and drives
// the order use-case. Processing is at-most-once from this service's point of
// view: each message is acknowledged before it is decoded, and redelivery is
// the broker's responsibility. A malformed or failing message is logged and
// the loop continues.
type PagamentoConsumer struct {
	group   sarama.ConsumerGroup
	topic   string
	useCase PagamentoAplicador
	logger  *log.Entry
	metrics *metrics.PedidoMetrics
	wg      sync.WaitGroup
}

// NewPagamentoConsumer connects a consumer group to the brokers.
func NewPagamentoConsumer(brokers []string, groupID, topic string, useCase PagamentoAplicador, m *metrics.PedidoMetrics) (*PagamentoConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return &PagamentoConsumer{
		group:   group,
		topic:   topic,
		useCase: useCase,
		logger:  log.WithField("component", "pagamento-consumer"),
		metrics: m,
	}, nil
}

// Start runs the subscription until the context is canceled.
func (c *PagamentoConsumer) Start(ctx context.Context) error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			// Consume returns on every rebalance and must be called again.
			if err := c.group.Consume(ctx, []string{c.topic}, c); err != nil {
				c.logger.WithError(err).Error("error from consumer")
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.group.Errors() {
			c.logger.WithError(err).Error("consumer error")
		}
	}()

	c.logger.WithField("topic", c.topic).Info("pagamento consumer started")
	return nil
}

// Stop closes the subscription and waits for the loops to drain.
func (c *PagamentoConsumer) Stop() error {
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close kafka consumer: %w", err)
	}
	c.wg.Wait()
	c.logger.Info("pagamento consumer stopped")
	return nil
}

// Setup is part of sarama.ConsumerGroupHandler.
func (c *PagamentoConsumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is part of sarama.ConsumerGroupHandler.
func (c *PagamentoConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim acknowledges each message and then processes it. A bad
// message never terminates the subscription.
func (c *PagamentoConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			// Ack first: redelivery semantics belong to the broker.
			session.MarkMessage(message, "")
			c.HandlePayload(message.Value)

		case <-session.Context().Done():
			return nil
		}
	}
}

// HandlePayload decodes one notification and dispatches it to the use-case.
// Failures are logged and counted, never propagated.
func (c *PagamentoConsumer) HandlePayload(data []byte) {
	c.metrics.RecordMensagemConsumida()

	info, err := ParseInfoPagamento(data)
	if err != nil {
		c.metrics.RecordMensagemComFalha()
		c.logger.WithError(err).Warn("descarte de mensagem de pagamento malformada")
		return
	}

	pedido, err := c.useCase.AtualizaPagamento(info)
	if err != nil {
		c.metrics.RecordMensagemComFalha()
		c.logger.WithError(err).WithFields(log.Fields{
			"pedido_id":    info.PedidoID,
			"pagamento_id": info.PagamentoID,
		}).Error("falha ao aplicar atualização de pagamento")
		return
	}

	c.logger.WithFields(log.Fields{
		"pedido_id": pedido.ID,
		"status":    pedido.Status.String(),
	}).Info("pedido atualizado pela notificação de pagamento")
}
