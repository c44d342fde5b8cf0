package usecase_test

import (
	"testing"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// mockProdutoGateway is a configurable ProdutoGateway; unset functions fail
// the test when called.
type mockProdutoGateway struct {
	t *testing.T

	GetProdutosFn            func() ([]domain.Produto, error)
	GetProdutoByIDFn         func(id int) (domain.Produto, error)
	GetProdutosByCategoriaFn func(categoria domain.Categoria) ([]domain.Produto, error)
	CreateProdutoFn          func(produto domain.Produto) (domain.Produto, error)
	UpdateProdutoFn          func(produto domain.Produto) (domain.Produto, error)
	DeleteProdutoFn          func(id int) error

	calls map[string]int
}

func newMockProdutoGateway(t *testing.T) *mockProdutoGateway {
	return &mockProdutoGateway{t: t, calls: make(map[string]int)}
}

func (m *mockProdutoGateway) record(name string) {
	m.calls[name]++
}

func (m *mockProdutoGateway) GetProdutos() ([]domain.Produto, error) {
	m.record("GetProdutos")
	if m.GetProdutosFn == nil {
		m.t.Fatal("unexpected GetProdutos call")
	}
	return m.GetProdutosFn()
}

func (m *mockProdutoGateway) GetProdutoByID(id int) (domain.Produto, error) {
	m.record("GetProdutoByID")
	if m.GetProdutoByIDFn == nil {
		m.t.Fatal("unexpected GetProdutoByID call")
	}
	return m.GetProdutoByIDFn(id)
}

func (m *mockProdutoGateway) GetProdutosByCategoria(categoria domain.Categoria) ([]domain.Produto, error) {
	m.record("GetProdutosByCategoria")
	if m.GetProdutosByCategoriaFn == nil {
		m.t.Fatal("unexpected GetProdutosByCategoria call")
	}
	return m.GetProdutosByCategoriaFn(categoria)
}

func (m *mockProdutoGateway) CreateProduto(produto domain.Produto) (domain.Produto, error) {
	m.record("CreateProduto")
	if m.CreateProdutoFn == nil {
		m.t.Fatal("unexpected CreateProduto call")
	}
	return m.CreateProdutoFn(produto)
}

func (m *mockProdutoGateway) UpdateProduto(produto domain.Produto) (domain.Produto, error) {
	m.record("UpdateProduto")
	if m.UpdateProdutoFn == nil {
		m.t.Fatal("unexpected UpdateProduto call")
	}
	return m.UpdateProdutoFn(produto)
}

func (m *mockProdutoGateway) DeleteProduto(id int) error {
	m.record("DeleteProduto")
	if m.DeleteProdutoFn == nil {
		m.t.Fatal("unexpected DeleteProduto call")
	}
	return m.DeleteProdutoFn(id)
}

var _ domain.ProdutoGateway = (*mockProdutoGateway)(nil)

// mockPedidoGateway mirrors mockProdutoGateway for the order side.
type mockPedidoGateway struct {
	t *testing.T

	CreatePedidoFn            func(pedido domain.Pedido) (domain.Pedido, error)
	ListaPedidosFn            func() ([]domain.Pedido, error)
	GetPedidosNovosFn         func() ([]domain.Pedido, error)
	GetPedidoByIDFn           func(id int) (domain.Pedido, error)
	AtualizaStatusFn          func(id int, status domain.Status) (domain.Pedido, error)
	AtualizaPagamentoStatusFn func(id int, pagamentoID string, status domain.Status) (domain.Pedido, error)
	CadastrarLancheFn         func(id int, lanche domain.Produto) (domain.Pedido, error)
	CadastrarAcompanhamentoFn func(id int, acompanhamento domain.Produto) (domain.Pedido, error)
	CadastrarBebidaFn         func(id int, bebida domain.Produto) (domain.Pedido, error)

	calls map[string]int
}

func newMockPedidoGateway(t *testing.T) *mockPedidoGateway {
	return &mockPedidoGateway{t: t, calls: make(map[string]int)}
}

func (m *mockPedidoGateway) record(name string) {
	m.calls[name]++
}

func (m *mockPedidoGateway) totalCalls() int {
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *mockPedidoGateway) CreatePedido(pedido domain.Pedido) (domain.Pedido, error) {
	m.record("CreatePedido")
	if m.CreatePedidoFn == nil {
		m.t.Fatal("unexpected CreatePedido call")
	}
	return m.CreatePedidoFn(pedido)
}

func (m *mockPedidoGateway) ListaPedidos() ([]domain.Pedido, error) {
	m.record("ListaPedidos")
	if m.ListaPedidosFn == nil {
		m.t.Fatal("unexpected ListaPedidos call")
	}
	return m.ListaPedidosFn()
}

func (m *mockPedidoGateway) GetPedidosNovos() ([]domain.Pedido, error) {
	m.record("GetPedidosNovos")
	if m.GetPedidosNovosFn == nil {
		m.t.Fatal("unexpected GetPedidosNovos call")
	}
	return m.GetPedidosNovosFn()
}

func (m *mockPedidoGateway) GetPedidoByID(id int) (domain.Pedido, error) {
	m.record("GetPedidoByID")
	if m.GetPedidoByIDFn == nil {
		m.t.Fatal("unexpected GetPedidoByID call")
	}
	return m.GetPedidoByIDFn(id)
}

func (m *mockPedidoGateway) AtualizaStatus(id int, status domain.Status) (domain.Pedido, error) {
	m.record("AtualizaStatus")
	if m.AtualizaStatusFn == nil {
		m.t.Fatal("unexpected AtualizaStatus call")
	}
	return m.AtualizaStatusFn(id, status)
}

func (m *mockPedidoGateway) AtualizaPagamentoStatus(id int, pagamentoID string, status domain.Status) (domain.Pedido, error) {
	m.record("AtualizaPagamentoStatus")
	if m.AtualizaPagamentoStatusFn == nil {
		m.t.Fatal("unexpected AtualizaPagamentoStatus call")
	}
	return m.AtualizaPagamentoStatusFn(id, pagamentoID, status)
}

func (m *mockPedidoGateway) CadastrarLanche(id int, lanche domain.Produto) (domain.Pedido, error) {
	m.record("CadastrarLanche")
	if m.CadastrarLancheFn == nil {
		m.t.Fatal("unexpected CadastrarLanche call")
	}
	return m.CadastrarLancheFn(id, lanche)
}

func (m *mockPedidoGateway) CadastrarAcompanhamento(id int, acompanhamento domain.Produto) (domain.Pedido, error) {
	m.record("CadastrarAcompanhamento")
	if m.CadastrarAcompanhamentoFn == nil {
		m.t.Fatal("unexpected CadastrarAcompanhamento call")
	}
	return m.CadastrarAcompanhamentoFn(id, acompanhamento)
}

func (m *mockPedidoGateway) CadastrarBebida(id int, bebida domain.Produto) (domain.Pedido, error) {
	m.record("CadastrarBebida")
	if m.CadastrarBebidaFn == nil {
		m.t.Fatal("unexpected CadastrarBebida call")
	}
	return m.CadastrarBebidaFn(id, bebida)
}

var _ domain.PedidoGateway = (*mockPedidoGateway)(nil)
