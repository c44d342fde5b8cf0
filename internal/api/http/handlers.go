package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/domain"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

// Handlers holds the use-cases the API exposes.
type Handlers struct {
	produtos   *usecase.ProdutoUseCase
	pedidos    *usecase.PedidosEPagamentosUseCase
	preparacao *usecase.PreparacaoEntregaUseCase
	logger     *log.Entry
}

// NewHandlers wires the API over the use-cases.
func NewHandlers(produtos *usecase.ProdutoUseCase, pedidos *usecase.PedidosEPagamentosUseCase, preparacao *usecase.PreparacaoEntregaUseCase) *Handlers {
	return &Handlers{
		produtos:   produtos,
		pedidos:    pedidos,
		preparacao: preparacao,
		logger:     log.WithField("component", "http-api"),
	}
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func parseCategoriaVar(r *http.Request) (domain.Categoria, error) {
	return domain.ParseCategoria(mux.Vars(r)["categoria"])
}

func (h *Handlers) getProdutos(w http.ResponseWriter, _ *http.Request) {
	produtos, err := h.produtos.GetProdutos()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, produtos)
}

func (h *Handlers) getProdutoByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	produto, err := h.produtos.GetProdutoByID(id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, produto)
}

func (h *Handlers) getProdutosByCategoria(w http.ResponseWriter, r *http.Request) {
	categoria, err := parseCategoriaVar(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	produtos, err := h.produtos.GetProdutosByCategoria(categoria)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, produtos)
}

func (h *Handlers) postProduto(w http.ResponseWriter, r *http.Request) {
	var req createProdutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	input, err := req.toCreateInput()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	produto, err := h.produtos.CreateProduto(input)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, produto)
}

func (h *Handlers) putProduto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	var req updateProdutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	produto, err := h.produtos.UpdateProduto(id, input)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, produto)
}

func (h *Handlers) deleteProduto(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	if err := h.produtos.DeleteProduto(id); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getPedidos(w http.ResponseWriter, _ *http.Request) {
	pedidos, err := h.pedidos.ListaPedidos()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pedidos)
}

func (h *Handlers) getPedidosNovos(w http.ResponseWriter, _ *http.Request) {
	pedidos, err := h.preparacao.PedidosNovos()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pedidos)
}

func (h *Handlers) getPedidoByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	pedido, err := h.pedidos.SelecionaPedidoPorID(id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pedido)
}

func (h *Handlers) postPedido(w http.ResponseWriter, r *http.Request) {
	var req createPedidoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	pedido, err := h.pedidos.NovoPedido(input)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, pedido)
}

func (h *Handlers) putStatusPedido(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	pedido, err := h.preparacao.AtualizaStatus(id, mux.Vars(r)["status"])
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pedido)
}

// putSlotPedido covers the three product-slot routes; the slot name comes from
// the matched path.
func (h *Handlers) putSlotPedido(w http.ResponseWriter, r *http.Request) {
	pedidoID, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	produtoID, ok := pathID(r, "produtoId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}

	var (
		pedido any
		err    error
	)
	switch mux.Vars(r)["slot"] {
	case "lanche":
		pedido, err = h.pedidos.AdicionaLanche(pedidoID, produtoID)
	case "acompanhamento":
		pedido, err = h.pedidos.AdicionaAcompanhamento(pedidoID, produtoID)
	case "bebida":
		pedido, err = h.pedidos.AdicionaBebida(pedidoID, produtoID)
	default:
		writeError(w, http.StatusNotFound, "não encontrado")
		return
	}
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pedido)
}

// getQRCodePedido renders the payment QR for an order as a PNG.
func (h *Handlers) getQRCodePedido(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Input inválido")
		return
	}
	png, err := h.pedidos.GeraQRCodePagamento(id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
