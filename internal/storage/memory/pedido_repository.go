package memory

import (
	"sort"
	"sync"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// pedidoRepositoryInMemory is the reference PedidoGateway for local
// development and tests.
type pedidoRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int]domain.Pedido
	nextID int
}

// NewPedidoRepository returns an empty in-memory order gateway.
func NewPedidoRepository() domain.PedidoGateway {
	return &pedidoRepositoryInMemory{
		items:  make(map[int]domain.Pedido),
		nextID: 1,
	}
}

// kitchenPriority orders the dashboard listing: ready orders first, then the
// ones being prepared, then everything else. Unknown statuses sort last.
func kitchenPriority(status domain.Status) int {
	switch status {
	case domain.StatusPronto:
		return 0
	case domain.StatusEmPreparacao:
		return 1
	default:
		return 2
	}
}

// CreatePedido assigns the next id and stamps both timestamps server-side.
func (r *pedidoRepositoryInMemory) CreatePedido(pedido domain.Pedido) (domain.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := domain.NowTimestamp()
	pedido.ID = r.nextID
	pedido.DataCriacao = now
	pedido.DataAtualizacao = now
	r.nextID++

	r.items[pedido.ID] = pedido
	return pedido, nil
}

// ListaPedidos excludes Finalizado and sorts by kitchen priority, then by
// ascending creation time. The fixed timestamp layout makes the string
// comparison chronological.
func (r *pedidoRepositoryInMemory) ListaPedidos() ([]domain.Pedido, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Pedido, 0, len(r.items))
	for _, pedido := range r.items {
		if pedido.Status == domain.StatusFinalizado {
			continue
		}
		result = append(result, pedido)
	}

	sort.Slice(result, func(i, j int) bool {
		pi, pj := kitchenPriority(result[i].Status), kitchenPriority(result[j].Status)
		if pi != pj {
			return pi < pj
		}
		if result[i].DataCriacao != result[j].DataCriacao {
			return result[i].DataCriacao < result[j].DataCriacao
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetPedidosNovos returns the "new orders" queue: Pendente or EmPreparacao.
func (r *pedidoRepositoryInMemory) GetPedidosNovos() ([]domain.Pedido, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Pedido, 0)
	for _, pedido := range r.items {
		if pedido.Status == domain.StatusPendente || pedido.Status == domain.StatusEmPreparacao {
			result = append(result, pedido)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *pedidoRepositoryInMemory) GetPedidoByID(id int) (domain.Pedido, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pedido, ok := r.items[id]
	if !ok {
		return domain.Pedido{}, domain.ErrNotFound
	}
	return pedido, nil
}

// AtualizaStatus rejects the sentinel Invalido before touching the stored
// order and refreshes the update timestamp otherwise.
func (r *pedidoRepositoryInMemory) AtualizaStatus(id int, status domain.Status) (domain.Pedido, error) {
	if status == domain.StatusInvalido {
		return domain.Pedido{}, domain.Invalid("status")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pedido, ok := r.items[id]
	if !ok {
		return domain.Pedido{}, domain.ErrNotFound
	}
	pedido.SetStatus(status)
	if err := pedido.SetDataAtualizacao(domain.NowTimestamp()); err != nil {
		return domain.Pedido{}, err
	}
	r.items[id] = pedido
	return pedido, nil
}

// AtualizaPagamentoStatus records the payment id and the status change under
// one critical section, so a partial update is never observable.
func (r *pedidoRepositoryInMemory) AtualizaPagamentoStatus(id int, pagamentoID string, status domain.Status) (domain.Pedido, error) {
	if status == domain.StatusInvalido {
		return domain.Pedido{}, domain.Invalid("status")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pedido, ok := r.items[id]
	if !ok {
		return domain.Pedido{}, domain.ErrNotFound
	}
	pedido.SetPagamento(pagamentoID)
	pedido.SetStatus(status)
	if err := pedido.SetDataAtualizacao(domain.NowTimestamp()); err != nil {
		return domain.Pedido{}, err
	}
	r.items[id] = pedido
	return pedido, nil
}

func (r *pedidoRepositoryInMemory) CadastrarLanche(id int, lanche domain.Produto) (domain.Pedido, error) {
	return r.setSlot(id, func(p *domain.Pedido) { p.SetLanche(&lanche) })
}

func (r *pedidoRepositoryInMemory) CadastrarAcompanhamento(id int, acompanhamento domain.Produto) (domain.Pedido, error) {
	return r.setSlot(id, func(p *domain.Pedido) { p.SetAcompanhamento(&acompanhamento) })
}

func (r *pedidoRepositoryInMemory) CadastrarBebida(id int, bebida domain.Produto) (domain.Pedido, error) {
	return r.setSlot(id, func(p *domain.Pedido) { p.SetBebida(&bebida) })
}

func (r *pedidoRepositoryInMemory) setSlot(id int, set func(*domain.Pedido)) (domain.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pedido, ok := r.items[id]
	if !ok {
		return domain.Pedido{}, domain.ErrNotFound
	}
	set(&pedido)
	if err := pedido.SetDataAtualizacao(domain.NowTimestamp()); err != nil {
		return domain.Pedido{}, err
	}
	r.items[id] = pedido
	return pedido, nil
}

var _ domain.PedidoGateway = (*pedidoRepositoryInMemory)(nil)
