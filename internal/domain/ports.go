package domain

// ProdutoGateway is the storage capability the catalog use-case depends on.
// Implementations own the serialization of concurrent writes to their
// underlying store; every operation may involve I/O.
type ProdutoGateway interface {
	// GetProdutos returns every stored product.
	GetProdutos() ([]Produto, error)
	// GetProdutoByID returns the product or ErrNotFound.
	GetProdutoByID(id int) (Produto, error)
	// GetProdutosByCategoria is a pure read filter; no matches yields an
	// empty slice, not an error.
	GetProdutosByCategoria(categoria Categoria) ([]Produto, error)
	// CreateProduto assigns the next id, stamps both timestamps and returns
	// the stored entity.
	CreateProduto(produto Produto) (Produto, error)
	// UpdateProduto overwrites the stored product or fails with ErrNotFound.
	UpdateProduto(produto Produto) (Produto, error)
	// DeleteProduto removes the product or fails with ErrNotFound.
	DeleteProduto(id int) error
}

// PedidoGateway is the storage capability the order use-cases depend on.
// Every operation referencing an absent order id fails with ErrNotFound.
type PedidoGateway interface {
	// CreatePedido stores a new order, assigning its id and stamping both
	// timestamps server-side.
	CreatePedido(pedido Pedido) (Pedido, error)
	// ListaPedidos returns the operational dashboard listing: Finalizado
	// excluded, kitchen-priority order (Pronto, then EmPreparacao, then the
	// rest, each group by ascending creation time).
	ListaPedidos() ([]Pedido, error)
	// GetPedidosNovos returns orders in Pendente or EmPreparacao.
	GetPedidosNovos() ([]Pedido, error)
	GetPedidoByID(id int) (Pedido, error)
	// AtualizaStatus overwrites the status and refreshes the update
	// timestamp. The sentinel Invalido is rejected with an Invalid error and
	// never stored.
	AtualizaStatus(id int, status Status) (Pedido, error)
	// AtualizaPagamentoStatus records the external payment id and the
	// resulting status in one atomic operation, so a partial update can
	// never be observed.
	AtualizaPagamentoStatus(id int, pagamentoID string, status Status) (Pedido, error)
	// CadastrarLanche replaces the lanche slot on an existing order.
	CadastrarLanche(id int, lanche Produto) (Pedido, error)
	// CadastrarAcompanhamento replaces the acompanhamento slot.
	CadastrarAcompanhamento(id int, acompanhamento Produto) (Pedido, error)
	// CadastrarBebida replaces the bebida slot.
	CadastrarBebida(id int, bebida Produto) (Pedido, error)
}
