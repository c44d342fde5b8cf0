package usecase

import (
	"sync"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// The guards pair a gateway instance with the single mutex that serializes
// every logical operation against it. One guard instance is shared by all
// callers of that gateway — HTTP handlers and the payment consumer alike — so
// operations on one store observe a total order. The pedido and produto locks
// are independent: a caller that reads a product and then writes an order
// performs two separate critical sections, which is why orders embed product
// snapshots instead of live references.

// PedidoGuard serializes access to a PedidoGateway.
type PedidoGuard struct {
	mu sync.Mutex
	gw domain.PedidoGateway
}

// NewPedidoGuard wraps a gateway in its exclusive-access guard.
func NewPedidoGuard(gw domain.PedidoGateway) *PedidoGuard {
	return &PedidoGuard{gw: gw}
}

// Acquire blocks until the gateway is available and returns it. Callers must
// Release when the operation is done.
func (g *PedidoGuard) Acquire() domain.PedidoGateway {
	g.mu.Lock()
	return g.gw
}

// TryAcquire returns the gateway only when the lock is free. The payment
// path uses it to fail fast under contention instead of stalling the
// consumer's message loop.
func (g *PedidoGuard) TryAcquire() (domain.PedidoGateway, bool) {
	if !g.mu.TryLock() {
		return nil, false
	}
	return g.gw, true
}

// Release gives the gateway back.
func (g *PedidoGuard) Release() {
	g.mu.Unlock()
}

// ProdutoGuard serializes access to a ProdutoGateway.
type ProdutoGuard struct {
	mu sync.Mutex
	gw domain.ProdutoGateway
}

// NewProdutoGuard wraps a gateway in its exclusive-access guard.
func NewProdutoGuard(gw domain.ProdutoGateway) *ProdutoGuard {
	return &ProdutoGuard{gw: gw}
}

// Acquire blocks until the gateway is available and returns it.
func (g *ProdutoGuard) Acquire() domain.ProdutoGateway {
	g.mu.Lock()
	return g.gw
}

// Release gives the gateway back.
func (g *ProdutoGuard) Release() {
	g.mu.Unlock()
}
