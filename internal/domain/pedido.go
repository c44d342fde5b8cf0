package domain

// Status is the order lifecycle state.
//
// Conceptual ordering: Pendente → Pago → EmPreparacao → Pronto → Finalizado,
// with Cancelado reachable from any non-terminal state. Transitions are not
// hard-enforced to follow the sequence (the kitchen assigns statuses by name),
// but the kitchen-queue listing depends on this ordering for prioritization.
type Status string

const (
	// StatusPendente — order created, payment not confirmed yet.
	StatusPendente Status = "Pendente"
	// StatusPago — payment approved by the external provider.
	StatusPago Status = "Pago"
	// StatusEmPreparacao — kitchen started working on the order.
	StatusEmPreparacao Status = "EmPreparacao"
	// StatusPronto — order ready for pickup.
	StatusPronto Status = "Pronto"
	// StatusFinalizado — order delivered; terminal.
	StatusFinalizado Status = "Finalizado"
	// StatusCancelado — order canceled before completion; terminal.
	StatusCancelado Status = "Cancelado"
	// StatusInvalido is a transition-rejection marker, never a stored state.
	StatusInvalido Status = "Invalido"
)

// ParseStatus is the canonical name→Status conversion. An unrecognized name
// fails with Invalid; "Invalido" parses but is rejected by the gateways.
func ParseStatus(input string) (Status, error) {
	switch input {
	case "Pendente":
		return StatusPendente, nil
	case "Pago":
		return StatusPago, nil
	case "EmPreparacao":
		return StatusEmPreparacao, nil
	case "Pronto":
		return StatusPronto, nil
	case "Finalizado":
		return StatusFinalizado, nil
	case "Cancelado":
		return StatusCancelado, nil
	case "Invalido":
		return StatusInvalido, nil
	default:
		return StatusInvalido, Invalidf("status desconhecido: %q", input)
	}
}

func (s Status) String() string {
	return string(s)
}

// Pedido aggregates up to three product slots plus payment and status
// metadata. Slots hold snapshots taken at order time, not live references.
type Pedido struct {
	// ID is assigned by the gateway on creation; 0 before persistence.
	ID int `json:"id"`
	// Cliente is nil for orders placed without identification.
	Cliente        *CPF     `json:"cliente,omitempty"`
	Lanche         *Produto `json:"lanche,omitempty"`
	Acompanhamento *Produto `json:"acompanhamento,omitempty"`
	Bebida         *Produto `json:"bebida,omitempty"`
	// Pagamento is the external payment-transaction id; empty until a payment
	// notification arrives.
	Pagamento       string `json:"pagamento,omitempty"`
	Status          Status `json:"status"`
	DataCriacao     string `json:"data_criacao"`
	DataAtualizacao string `json:"data_atualizacao"`
}

// NewPedido assembles an order without validating it; callers run
// ValidateEntity before persisting.
func NewPedido(id int, cliente *CPF, lanche, acompanhamento, bebida *Produto, pagamento string, status Status, dataCriacao, dataAtualizacao string) Pedido {
	return Pedido{
		ID:              id,
		Cliente:         cliente,
		Lanche:          lanche,
		Acompanhamento:  acompanhamento,
		Bebida:          bebida,
		Pagamento:       pagamento,
		Status:          status,
		DataCriacao:     dataCriacao,
		DataAtualizacao: dataAtualizacao,
	}
}

// ValidateEntity fails with Invalid when no product slot is populated or when
// either timestamp is malformed. It is independent of the state machine and
// runs before persistence on creation.
func (p *Pedido) ValidateEntity() error {
	if p.Lanche == nil && p.Acompanhamento == nil && p.Bebida == nil {
		return Invalid("Pedido deve conter pelo menos um item entre Lanche, Acompanhamento ou Bebida")
	}
	if err := assertTimestampFormat(p.DataCriacao); err != nil {
		return err
	}
	return assertTimestampFormat(p.DataAtualizacao)
}

// ValorTotal sums the prices of the populated slots; absent slots contribute
// zero. Pure computation, no side effects.
func (p *Pedido) ValorTotal() float64 {
	total := 0.0
	if p.Lanche != nil {
		total += p.Lanche.Preco
	}
	if p.Acompanhamento != nil {
		total += p.Acompanhamento.Preco
	}
	if p.Bebida != nil {
		total += p.Bebida.Preco
	}
	return total
}

func (p *Pedido) SetPagamento(pagamento string) {
	p.Pagamento = pagamento
}

func (p *Pedido) SetStatus(status Status) {
	p.Status = status
}

func (p *Pedido) SetLanche(lanche *Produto) {
	p.Lanche = lanche
}

func (p *Pedido) SetAcompanhamento(acompanhamento *Produto) {
	p.Acompanhamento = acompanhamento
}

func (p *Pedido) SetBebida(bebida *Produto) {
	p.Bebida = bebida
}

// SetDataAtualizacao re-validates the format and fails rather than silently
// accepting a malformed value.
func (p *Pedido) SetDataAtualizacao(dataAtualizacao string) error {
	if err := assertTimestampFormat(dataAtualizacao); err != nil {
		return err
	}
	p.DataAtualizacao = dataAtualizacao
	return nil
}
