package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// NewRouter mounts the API routes behind the api-key guard and CORS. Catalog
// mutations additionally require the Admin user group.
func NewRouter(h *Handlers, apiKey string) http.Handler {
	r := mux.NewRouter()
	r.Use(APIKeyMiddleware(apiKey, log.WithField("component", "http-api")))

	r.HandleFunc("/produtos", h.getProdutos).Methods(http.MethodGet)
	r.HandleFunc("/produtos", adminOnly(h.postProduto)).Methods(http.MethodPost)
	r.HandleFunc("/produtos/categoria/{categoria}", h.getProdutosByCategoria).Methods(http.MethodGet)
	r.HandleFunc("/produtos/{id:[0-9]+}", h.getProdutoByID).Methods(http.MethodGet)
	r.HandleFunc("/produtos/{id:[0-9]+}", adminOnly(h.putProduto)).Methods(http.MethodPut)
	r.HandleFunc("/produtos/{id:[0-9]+}", adminOnly(h.deleteProduto)).Methods(http.MethodDelete)

	r.HandleFunc("/pedidos", h.getPedidos).Methods(http.MethodGet)
	r.HandleFunc("/pedidos", h.postPedido).Methods(http.MethodPost)
	r.HandleFunc("/pedidos/novos", h.getPedidosNovos).Methods(http.MethodGet)
	r.HandleFunc("/pedidos/{id:[0-9]+}", h.getPedidoByID).Methods(http.MethodGet)
	r.HandleFunc("/pedidos/{id:[0-9]+}/status/{status}", h.putStatusPedido).Methods(http.MethodPut)
	r.HandleFunc("/pedidos/{id:[0-9]+}/{slot:lanche|acompanhamento|bebida}/{produtoId:[0-9]+}", h.putSlotPedido).Methods(http.MethodPut)
	r.HandleFunc("/pedidos/{id:[0-9]+}/qrcode", h.getQRCodePedido).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "não encontrado")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "api-secret", "UserGroup"},
	})
	return c.Handler(r)
}
