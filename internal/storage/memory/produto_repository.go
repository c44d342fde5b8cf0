package memory

import (
	"sort"
	"sync"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// produtoRepositoryInMemory is the reference ProdutoGateway used for local
// development and tests. It owns serialization of concurrent writes.
type produtoRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int]domain.Produto
	nextID int
}

// NewProdutoRepository returns an empty in-memory product gateway.
func NewProdutoRepository() domain.ProdutoGateway {
	return &produtoRepositoryInMemory{
		items:  make(map[int]domain.Produto),
		nextID: 1,
	}
}

// GetProdutos returns every stored product ordered by id.
func (r *produtoRepositoryInMemory) GetProdutos() ([]domain.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Produto, 0, len(r.items))
	for _, produto := range r.items {
		result = append(result, produto)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *produtoRepositoryInMemory) GetProdutoByID(id int) (domain.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	produto, ok := r.items[id]
	if !ok {
		return domain.Produto{}, domain.ErrNotFound
	}
	return produto, nil
}

// GetProdutosByCategoria filters the stored set; no matches is an empty
// slice, not an error.
func (r *produtoRepositoryInMemory) GetProdutosByCategoria(categoria domain.Categoria) ([]domain.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Produto, 0)
	for _, produto := range r.items {
		if produto.Categoria == categoria {
			result = append(result, produto)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CreateProduto assigns the next id and stamps both timestamps; the incoming
// id placeholder is ignored.
func (r *produtoRepositoryInMemory) CreateProduto(produto domain.Produto) (domain.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := domain.NowTimestamp()
	produto.ID = r.nextID
	produto.DataCriacao = now
	produto.DataAtualizacao = now
	r.nextID++

	r.items[produto.ID] = produto
	return produto, nil
}

func (r *produtoRepositoryInMemory) UpdateProduto(produto domain.Produto) (domain.Produto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[produto.ID]; !ok {
		return domain.Produto{}, domain.ErrNotFound
	}
	r.items[produto.ID] = produto
	return produto, nil
}

func (r *produtoRepositoryInMemory) DeleteProduto(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.ProdutoGateway = (*produtoRepositoryInMemory)(nil)
