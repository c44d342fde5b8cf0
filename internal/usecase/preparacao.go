package usecase

import (
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// PreparacaoEntregaUseCase drives the kitchen workflow: the new-orders queue
// and named status transitions.
type PreparacaoEntregaUseCase struct {
	pedidos *PedidoGuard
	logger  *log.Entry
}

// NewPreparacaoEntregaUseCase builds the kitchen use-case over the shared
// pedido guard.
func NewPreparacaoEntregaUseCase(pedidos *PedidoGuard, logger *log.Entry) *PreparacaoEntregaUseCase {
	if logger == nil {
		logger = log.WithField("component", "preparacao-usecase")
	}
	return &PreparacaoEntregaUseCase{pedidos: pedidos, logger: logger}
}

// PedidosNovos returns the queue of orders in Pendente or EmPreparacao.
func (u *PreparacaoEntregaUseCase) PedidosNovos() ([]domain.Pedido, error) {
	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()
	return gw.GetPedidosNovos()
}

// AtualizaStatus maps the external status name and applies it. An
// unrecognized name fails with Invalid before any gateway call, so bad input
// never causes a partial state change; the sentinel Invalido is additionally
// rejected by the gateway.
func (u *PreparacaoEntregaUseCase) AtualizaStatus(pedidoID int, statusName string) (domain.Pedido, error) {
	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return domain.Pedido{}, err
	}

	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()

	pedido, err := gw.AtualizaStatus(pedidoID, status)
	if err != nil {
		return domain.Pedido{}, err
	}
	u.logger.WithFields(log.Fields{
		"pedido_id": pedido.ID,
		"status":    pedido.Status.String(),
	}).Info("status do pedido atualizado")
	return pedido, nil
}
