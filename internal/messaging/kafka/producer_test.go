package kafka

import (
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

func TestPagamentoProducer_Publish(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &PagamentoProducer{
		producer: mockProducer,
		topic:    DefaultPagamentoTopic,
		logger:   log.WithField("test", "pagamento-producer"),
	}

	info := usecase.InfoPagamento{
		PedidoID:    1,
		PagamentoID: "pay-1",
		Status:      usecase.PagamentoAprovado,
	}
	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var sent usecase.InfoPagamento
		if err := json.Unmarshal(val, &sent); err != nil {
			return err
		}
		if sent != info {
			t.Fatalf("payload round trip mismatch: %+v", sent)
		}
		return nil
	})

	if err := producer.PublishPagamento(info); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPagamentoProducer_PublishError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &PagamentoProducer{
		producer: mockProducer,
		topic:    DefaultPagamentoTopic,
		logger:   log.WithField("test", "pagamento-producer"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	info := usecase.InfoPagamento{PedidoID: 1, PagamentoID: "pay-1", Status: usecase.PagamentoRecusado}
	if err := producer.PublishPagamento(info); err == nil {
		t.Fatal("expected publish error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
