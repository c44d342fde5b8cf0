package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

// PagamentoProducer publishes payment notifications on the topic the service
// consumes. The service itself never produces; the producer exists for the
// local simulator and tests.
type PagamentoProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Entry
}

// NewPagamentoProducer creates a synchronous, idempotent producer bound to the
// notification topic.
func NewPagamentoProducer(brokers []string, topic string) (*PagamentoProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1 // required for idempotence

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &PagamentoProducer{
		producer: producer,
		topic:    topic,
		logger:   log.WithField("component", "pagamento-producer"),
	}, nil
}

// PublishPagamento sends one notification keyed by the order id, so updates
// for the same order land on the same partition in order.
func (p *PagamentoProducer) PublishPagamento(info usecase.InfoPagamento) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal pagamento notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(fmt.Sprintf("pedido-%d", info.PedidoID)),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic":     p.topic,
			"pedido_id": info.PedidoID,
		}).Error("failed to send pagamento notification")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":        p.topic,
		"pedido_id":    info.PedidoID,
		"pagamento_id": info.PagamentoID,
		"partition":    partition,
		"offset":       offset,
	}).Debug("pagamento notification sent")

	return nil
}

// Close shuts the producer down.
func (p *PagamentoProducer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
