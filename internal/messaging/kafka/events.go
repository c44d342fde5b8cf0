package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

// DefaultPagamentoTopic is the queue the payment provider publishes
// notifications on; overridable through configuration.
const DefaultPagamentoTopic = "lanchonete.pagamentos"

// DefaultConsumerGroup identifies this service on the broker.
const DefaultConsumerGroup = "pedido-pagamento-service"

// ParseInfoPagamento decodes a payment-notification payload:
// {"pedido_id": n, "pagamento_id": "...", "status": "Aprovado"|"Recusado"}.
func ParseInfoPagamento(data []byte) (usecase.InfoPagamento, error) {
	var info usecase.InfoPagamento
	if err := json.Unmarshal(data, &info); err != nil {
		return usecase.InfoPagamento{}, fmt.Errorf("unmarshal pagamento notification: %w", err)
	}
	if info.Status != usecase.PagamentoAprovado && info.Status != usecase.PagamentoRecusado {
		return usecase.InfoPagamento{}, fmt.Errorf("unknown pagamento status %q", info.Status)
	}
	return info, nil
}
