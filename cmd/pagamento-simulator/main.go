// Command pagamento-simulator publishes synthetic payment notifications so
// the full order flow can be exercised locally without a real payment
// provider.
package main

import (
	"flag"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/messaging/kafka"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	var (
		brokers  = flag.String("brokers", "localhost:9092", "comma-separated kafka brokers")
		topic    = flag.String("topic", kafka.DefaultPagamentoTopic, "payment notification topic")
		pedidoID = flag.Int("pedido", 0, "order id to notify")
		approve  = flag.Bool("approve", true, "approve (true) or decline (false) the payment")
	)
	flag.Parse()

	if *pedidoID <= 0 {
		log.Fatal("informe -pedido com o id do pedido")
	}

	status := usecase.PagamentoAprovado
	if !*approve {
		status = usecase.PagamentoRecusado
	}
	info := usecase.InfoPagamento{
		PedidoID:    *pedidoID,
		PagamentoID: uuid.NewString(),
		Status:      status,
	}

	producer, err := kafka.NewPagamentoProducer(strings.Split(*brokers, ","), *topic)
	if err != nil {
		log.WithError(err).Fatal("falha ao criar o producer")
	}
	defer func() {
		if err := producer.Close(); err != nil {
			log.WithError(err).Warn("falha ao fechar o producer")
		}
	}()

	if err := producer.PublishPagamento(info); err != nil {
		log.WithError(err).Fatal("falha ao publicar a notificação")
	}

	log.WithFields(log.Fields{
		"pedido_id":    info.PedidoID,
		"pagamento_id": info.PagamentoID,
		"status":       info.Status,
	}).Info("notificação de pagamento publicada")
}
