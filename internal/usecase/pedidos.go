package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/soat-kiosk/lanchonete/internal/domain"
	"github.com/soat-kiosk/lanchonete/internal/metrics"
)

// CreatePedidoInput carries an optional customer id and up to three optional
// product references resolved at creation time.
type CreatePedidoInput struct {
	ClienteID        *domain.CPF
	LancheID         *int
	AcompanhamentoID *int
	BebidaID         *int
}

// StatusPagamento is the coarse outcome carried by a payment notification.
type StatusPagamento string

const (
	PagamentoAprovado StatusPagamento = "Aprovado"
	PagamentoRecusado StatusPagamento = "Recusado"
)

// InfoPagamento is the payment notification the consumer dispatches.
type InfoPagamento struct {
	PedidoID    int             `json:"pedido_id"`
	PagamentoID string          `json:"pagamento_id"`
	Status      StatusPagamento `json:"status"`
}

// PedidosEPagamentosUseCase composes orders from catalog products and applies
// payment confirmations.
type PedidosEPagamentosUseCase struct {
	pedidos  *PedidoGuard
	produtos *ProdutoGuard
	logger   *log.Entry
	metrics  *metrics.PedidoMetrics
}

// NewPedidosEPagamentosUseCase builds the order use-case. The guards must be
// the same instances every other caller of those gateways uses. A nil metrics
// set disables instrumentation (tests).
func NewPedidosEPagamentosUseCase(pedidos *PedidoGuard, produtos *ProdutoGuard, m *metrics.PedidoMetrics, logger *log.Entry) *PedidosEPagamentosUseCase {
	if logger == nil {
		logger = log.WithField("component", "pedido-usecase")
	}
	return &PedidosEPagamentosUseCase{
		pedidos:  pedidos,
		produtos: produtos,
		logger:   logger,
		metrics:  m,
	}
}

func (u *PedidosEPagamentosUseCase) ListaPedidos() ([]domain.Pedido, error) {
	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()
	return gw.ListaPedidos()
}

func (u *PedidosEPagamentosUseCase) SelecionaPedidoPorID(id int) (domain.Pedido, error) {
	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()
	return gw.GetPedidoByID(id)
}

// NovoPedido resolves each referenced product into an embedded snapshot,
// builds a Pendente order with no payment id and delegates creation to the
// gateway. A missing product propagates NotFound; an input with no product at
// all is rejected by the entity validation.
func (u *PedidosEPagamentosUseCase) NovoPedido(input CreatePedidoInput) (domain.Pedido, error) {
	lanche, err := u.resolveProduto(input.LancheID)
	if err != nil {
		return domain.Pedido{}, err
	}
	acompanhamento, err := u.resolveProduto(input.AcompanhamentoID)
	if err != nil {
		return domain.Pedido{}, err
	}
	bebida, err := u.resolveProduto(input.BebidaID)
	if err != nil {
		return domain.Pedido{}, err
	}

	now := domain.NowTimestamp()
	pedido := domain.NewPedido(0, input.ClienteID, lanche, acompanhamento, bebida, "", domain.StatusPendente, now, now)
	if err := pedido.ValidateEntity(); err != nil {
		return domain.Pedido{}, err
	}

	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()

	created, err := gw.CreatePedido(pedido)
	if err != nil {
		return domain.Pedido{}, err
	}
	u.metrics.RecordPedidoCriado()
	u.logger.WithFields(log.Fields{
		"pedido_id":   created.ID,
		"valor_total": created.ValorTotal(),
	}).Info("pedido criado")
	return created, nil
}

// AdicionaLanche attaches a product to the lanche slot after checking its
// category; a mismatch fails with Invalid and leaves the order unchanged.
func (u *PedidosEPagamentosUseCase) AdicionaLanche(pedidoID, produtoID int) (domain.Pedido, error) {
	produto, err := u.resolveComCategoria(produtoID, domain.CategoriaLanche)
	if err != nil {
		return domain.Pedido{}, err
	}
	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()
	return gw.CadastrarLanche(pedidoID, produto)
}

// AdicionaAcompanhamento attaches a product to the acompanhamento slot.
func (u *PedidosEPagamentosUseCase) AdicionaAcompanhamento(pedidoID, produtoID int) (domain.Pedido, error) {
	produto, err := u.resolveComCategoria(produtoID, domain.CategoriaAcompanhamento)
	if err != nil {
		return domain.Pedido{}, err
	}
	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()
	return gw.CadastrarAcompanhamento(pedidoID, produto)
}

// AdicionaBebida attaches a product to the bebida slot.
func (u *PedidosEPagamentosUseCase) AdicionaBebida(pedidoID, produtoID int) (domain.Pedido, error) {
	produto, err := u.resolveComCategoria(produtoID, domain.CategoriaBebida)
	if err != nil {
		return domain.Pedido{}, err
	}
	gw := u.pedidos.Acquire()
	defer u.pedidos.Release()
	return gw.CadastrarBebida(pedidoID, produto)
}

// AtualizaPagamento maps the notification outcome onto the status machine
// (Aprovado→Pago, Recusado→Cancelado) and applies it through the atomic
// gateway update. The lock attempt is non-blocking: under contention the
// operation fails immediately with Invalid instead of stalling the consumer.
func (u *PedidosEPagamentosUseCase) AtualizaPagamento(info InfoPagamento) (domain.Pedido, error) {
	start := time.Now()
	defer u.metrics.RecordPagamentoDuration(time.Since(start))

	gw, ok := u.pedidos.TryAcquire()
	if !ok {
		return domain.Pedido{}, domain.Invalid("Erro ao acessar o banco de dados")
	}
	defer u.pedidos.Release()

	var status domain.Status
	switch info.Status {
	case PagamentoAprovado:
		status = domain.StatusPago
	case PagamentoRecusado:
		status = domain.StatusCancelado
	default:
		return domain.Pedido{}, domain.Invalidf("status de pagamento desconhecido: %q", info.Status)
	}

	pedido, err := gw.AtualizaPagamentoStatus(info.PedidoID, info.PagamentoID, status)
	if err != nil {
		return domain.Pedido{}, err
	}

	if status == domain.StatusPago {
		u.metrics.RecordPagamentoAprovado()
	} else {
		u.metrics.RecordPagamentoRecusado()
	}
	u.logger.WithFields(log.Fields{
		"pedido_id":    pedido.ID,
		"pagamento_id": info.PagamentoID,
		"status":       pedido.Status.String(),
	}).Info("pagamento aplicado ao pedido")
	return pedido, nil
}

// qrPayload is what the kiosk's payment QR encodes.
type qrPayload struct {
	PedidoID   int     `json:"pedido_id"`
	ValorTotal float64 `json:"valor_total"`
}

// GeraQRCodePagamento renders the checkout QR for an order: a PNG encoding
// the order id and total, scanned by the customer's payment app.
func (u *PedidosEPagamentosUseCase) GeraQRCodePagamento(pedidoID int) ([]byte, error) {
	pedido, err := u.SelecionaPedidoPorID(pedidoID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(qrPayload{PedidoID: pedido.ID, ValorTotal: pedido.ValorTotal()})
	if err != nil {
		return nil, domain.Invalidf("falha ao montar payload do QR: %v", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qrcode: %w", err)
	}
	return png, nil
}

// resolveProduto fetches an optional product reference in its own critical
// section on the produto lock.
func (u *PedidosEPagamentosUseCase) resolveProduto(id *int) (*domain.Produto, error) {
	if id == nil {
		return nil, nil
	}
	gw := u.produtos.Acquire()
	defer u.produtos.Release()

	produto, err := gw.GetProdutoByID(*id)
	if err != nil {
		return nil, err
	}
	return &produto, nil
}

// resolveComCategoria fetches a product and enforces the slot's expected
// category, guarding against a dessert landing in the drink slot.
func (u *PedidosEPagamentosUseCase) resolveComCategoria(id int, categoria domain.Categoria) (domain.Produto, error) {
	gw := u.produtos.Acquire()
	defer u.produtos.Release()

	produto, err := gw.GetProdutoByID(id)
	if err != nil {
		return domain.Produto{}, err
	}
	if produto.Categoria != categoria {
		return domain.Produto{}, domain.Invalidf("produto %d não é um %s", id, categoria)
	}
	return produto, nil
}
