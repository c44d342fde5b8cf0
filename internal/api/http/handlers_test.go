package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/soat-kiosk/lanchonete/internal/api/http"
	"github.com/soat-kiosk/lanchonete/internal/domain"
	"github.com/soat-kiosk/lanchonete/internal/storage/memory"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

const testAPIKey = "valid_api_key"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	pedidoGuard := usecase.NewPedidoGuard(memory.NewPedidoRepository())
	produtoGuard := usecase.NewProdutoGuard(memory.NewProdutoRepository())

	produtoUC := usecase.NewProdutoUseCase(produtoGuard, nil)
	pedidoUC := usecase.NewPedidosEPagamentosUseCase(pedidoGuard, produtoGuard, nil, nil)
	preparacaoUC := usecase.NewPreparacaoEntregaUseCase(pedidoGuard, nil)

	handlers := api.NewHandlers(produtoUC, pedidoUC, preparacaoUC)
	return api.NewRouter(handlers, testAPIKey)
}

func doRequest(t *testing.T, server http.Handler, method, path string, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("api-secret", testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("UserGroup", "Admin")
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func createTestProduto(t *testing.T, server http.Handler, nome, categoria string, preco float64) domain.Produto {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"nome":         nome,
		"descricao":    "desc",
		"categoria":    categoria,
		"preco":        preco,
		"ingredientes": []string{"ingrediente"},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	rec := doRequest(t, server, http.MethodPost, "/produtos", string(body), true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create produto returned %d: %s", rec.Code, rec.Body.String())
	}
	var produto domain.Produto
	if err := json.Unmarshal(rec.Body.Bytes(), &produto); err != nil {
		t.Fatalf("decode produto failed: %v", err)
	}
	return produto
}

func TestAPIKeyGuard(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/produtos", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing api key: got %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/produtos", nil)
	req.Header.Set("api-secret", "wrong")
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong api key: got %d, want 401", rec.Code)
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("error body is not the standard shape: %v", err)
	}
	if errResp.Status != http.StatusUnauthorized || errResp.Msg == "" {
		t.Fatalf("unexpected error body: %+v", errResp)
	}
}

func TestAdminGuardOnCatalogMutations(t *testing.T) {
	server := newTestServer(t)
	body := `{"nome":"X","descricao":"d","categoria":"Lanche","preco":1,"ingredientes":["i"]}`

	rec := doRequest(t, server, http.MethodPost, "/produtos", body, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing UserGroup: got %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/produtos", strings.NewReader(body))
	req.Header.Set("api-secret", testAPIKey)
	req.Header.Set("UserGroup", "Cliente")
	rec2 := httptest.NewRecorder()
	server.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin UserGroup: got %d, want 401", rec2.Code)
	}
}

func TestProdutoCRUD(t *testing.T) {
	server := newTestServer(t)
	if created := createTestProduto(t, server, "Cheeseburger", "Lanche", 9.99); created.ID != 1 {
		t.Fatalf("expected first id 1, got %d", created.ID)
	}

	rec := doRequest(t, server, http.MethodGet, "/produtos", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}
	var produtos []domain.Produto
	if err := json.Unmarshal(rec.Body.Bytes(), &produtos); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(produtos) != 1 || produtos[0].Nome != "Cheeseburger" {
		t.Fatalf("unexpected listing: %+v", produtos)
	}

	rec = doRequest(t, server, http.MethodGet, "/produtos/categoria/Lanche", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("categoria filter returned %d", rec.Code)
	}

	rec = doRequest(t, server, http.MethodGet, "/produtos/categoria/Entrada", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown categoria: got %d, want 400", rec.Code)
	}

	update := `{"nome":"X-Bacon","descricao":"desc","categoria":"Lanche","preco":12.99,"ingredientes":["Bacon"]}`
	rec = doRequest(t, server, http.MethodPut, "/produtos/1", update, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodDelete, "/produtos/1", "", true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d", rec.Code)
	}

	rec = doRequest(t, server, http.MethodGet, "/produtos/1", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted produto: got %d, want 404", rec.Code)
	}
}

func TestProdutoPartialUpdate(t *testing.T) {
	server := newTestServer(t)
	created := createTestProduto(t, server, "Cheeseburger", "Lanche", 9.99)

	rec := doRequest(t, server, http.MethodPut, "/produtos/1", `{"preco":9.5}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("partial update returned %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.Produto
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode produto failed: %v", err)
	}
	if updated.Preco != 9.5 {
		t.Fatalf("preco not applied: %v", updated.Preco)
	}
	if updated.Nome != created.Nome || updated.Descricao != created.Descricao ||
		updated.Categoria != created.Categoria || len(updated.Ingredientes) != len(created.Ingredientes) {
		t.Fatalf("absent fields must stay untouched: %+v", updated)
	}

	rec = doRequest(t, server, http.MethodPut, "/produtos/1", `{"categoria":"Entrada"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown categoria on update: got %d, want 400", rec.Code)
	}
}

func TestPedidoFlow(t *testing.T) {
	server := newTestServer(t)
	lanche := createTestProduto(t, server, "Cheeseburger", "Lanche", 9.99)
	bebida := createTestProduto(t, server, "Refrigerante", "Bebida", 4.99)

	body, _ := json.Marshal(map[string]any{"lanche_id": lanche.ID})
	rec := doRequest(t, server, http.MethodPost, "/pedidos", string(body), false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create pedido returned %d: %s", rec.Code, rec.Body.String())
	}
	var pedido domain.Pedido
	if err := json.Unmarshal(rec.Body.Bytes(), &pedido); err != nil {
		t.Fatalf("decode pedido failed: %v", err)
	}
	if pedido.Status != domain.StatusPendente || pedido.Pagamento != "" {
		t.Fatalf("unexpected new order: %+v", pedido)
	}

	rec = doRequest(t, server, http.MethodPut, "/pedidos/1/bebida/2", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("attach bebida returned %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pedido); err != nil {
		t.Fatalf("decode pedido failed: %v", err)
	}
	if pedido.Bebida == nil || pedido.Bebida.ID != bebida.ID {
		t.Fatalf("bebida not attached: %+v", pedido.Bebida)
	}

	// Attaching a drink to the lanche slot must fail the category check.
	rec = doRequest(t, server, http.MethodPut, "/pedidos/1/lanche/2", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("category mismatch: got %d, want 400", rec.Code)
	}

	rec = doRequest(t, server, http.MethodPut, "/pedidos/1/status/EmPreparacao", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, server, http.MethodPut, "/pedidos/1/status/Entregue", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: got %d, want 400", rec.Code)
	}

	rec = doRequest(t, server, http.MethodGet, "/pedidos/novos", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("novos returned %d", rec.Code)
	}
	var novos []domain.Pedido
	if err := json.Unmarshal(rec.Body.Bytes(), &novos); err != nil {
		t.Fatalf("decode novos failed: %v", err)
	}
	if len(novos) != 1 {
		t.Fatalf("expected 1 new order, got %d", len(novos))
	}
}

func TestPedidoValidation(t *testing.T) {
	server := newTestServer(t)

	rec := doRequest(t, server, http.MethodPost, "/pedidos", `{}`, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty order: got %d, want 400", rec.Code)
	}
	var errResp api.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error body failed: %v", err)
	}
	if errResp.Msg != "Pedido deve conter pelo menos um item entre Lanche, Acompanhamento ou Bebida" {
		t.Fatalf("unexpected message %q", errResp.Msg)
	}

	rec = doRequest(t, server, http.MethodGet, "/pedidos/42", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing order: got %d, want 404", rec.Code)
	}

	rec = doRequest(t, server, http.MethodPost, "/pedidos", `{"cliente_id":"111","lanche_id":1}`, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad cpf: got %d, want 400", rec.Code)
	}
}

func TestPedidoQRCode(t *testing.T) {
	server := newTestServer(t)
	lanche := createTestProduto(t, server, "Cheeseburger", "Lanche", 9.99)

	body, _ := json.Marshal(map[string]any{"lanche_id": lanche.ID})
	rec := doRequest(t, server, http.MethodPost, "/pedidos", string(body), false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create pedido returned %d", rec.Code)
	}

	rec = doRequest(t, server, http.MethodGet, "/pedidos/1/qrcode", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("qrcode returned %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("expected a PNG body")
	}
}
