package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

const pedidoColumns = "id, cliente, lanche, acompanhamento, bebida, pagamento, status, data_criacao, data_atualizacao"

type pedidoRepository struct {
	db *sql.DB
}

// NewPedidoRepository creates the PostgreSQL-backed PedidoGateway. Product
// slots are stored as JSONB snapshots, so later catalog changes never affect
// an already-placed order.
func NewPedidoRepository(store *Store) domain.PedidoGateway {
	return &pedidoRepository{db: store.DB()}
}

func (r *pedidoRepository) CreatePedido(pedido domain.Pedido) (domain.Pedido, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	lanche, acompanhamento, bebida, err := encodeSlots(&pedido)
	if err != nil {
		return domain.Pedido{}, err
	}

	var cliente sql.NullString
	if pedido.Cliente != nil {
		cliente = sql.NullString{String: pedido.Cliente.String(), Valid: true}
	}

	now := domain.NowTimestamp()
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO pedido (cliente, lanche, acompanhamento, bebida, pagamento, status, data_criacao, data_atualizacao)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		cliente, lanche, acompanhamento, bebida,
		nullable(pedido.Pagamento), string(pedido.Status), now, now,
	).Scan(&pedido.ID)
	if err != nil {
		return domain.Pedido{}, dbError("insert pedido", err)
	}

	pedido.DataCriacao = now
	pedido.DataAtualizacao = now
	return pedido, nil
}

// ListaPedidos is the operational dashboard query: Finalizado excluded,
// ready orders first, then in-preparation, then the rest, each group by
// ascending creation time.
func (r *pedidoRepository) ListaPedidos() ([]domain.Pedido, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+pedidoColumns+`
		FROM pedido
		WHERE status <> 'Finalizado'
		ORDER BY CASE status WHEN 'Pronto' THEN 0 WHEN 'EmPreparacao' THEN 1 ELSE 2 END,
		         data_criacao ASC, id ASC
	`)
	if err != nil {
		return nil, dbError("list pedidos", err)
	}
	defer rows.Close()

	return scanPedidos(rows)
}

func (r *pedidoRepository) GetPedidosNovos() ([]domain.Pedido, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+pedidoColumns+`
		FROM pedido
		WHERE status IN ('Pendente', 'EmPreparacao')
		ORDER BY data_criacao ASC, id ASC
	`)
	if err != nil {
		return nil, dbError("list pedidos novos", err)
	}
	defer rows.Close()

	return scanPedidos(rows)
}

func (r *pedidoRepository) GetPedidoByID(id int) (domain.Pedido, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+pedidoColumns+` FROM pedido WHERE id = $1`, id)
	pedido, err := scanPedido(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pedido{}, domain.ErrNotFound
		}
		return domain.Pedido{}, dbError("select pedido", err)
	}
	return pedido, nil
}

func (r *pedidoRepository) AtualizaStatus(id int, status domain.Status) (domain.Pedido, error) {
	if status == domain.StatusInvalido {
		return domain.Pedido{}, domain.Invalid("status")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE pedido
		SET status = $2, data_atualizacao = $3
		WHERE id = $1
		RETURNING `+pedidoColumns,
		id, string(status), domain.NowTimestamp(),
	)
	pedido, err := scanPedido(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pedido{}, domain.ErrNotFound
		}
		return domain.Pedido{}, dbError("update pedido status", err)
	}
	return pedido, nil
}

// AtualizaPagamentoStatus records the payment id and the status change in a
// single UPDATE, so a partial update cannot be observed.
func (r *pedidoRepository) AtualizaPagamentoStatus(id int, pagamentoID string, status domain.Status) (domain.Pedido, error) {
	if status == domain.StatusInvalido {
		return domain.Pedido{}, domain.Invalid("status")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		UPDATE pedido
		SET pagamento = $2, status = $3, data_atualizacao = $4
		WHERE id = $1
		RETURNING `+pedidoColumns,
		id, pagamentoID, string(status), domain.NowTimestamp(),
	)
	pedido, err := scanPedido(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pedido{}, domain.ErrNotFound
		}
		return domain.Pedido{}, dbError("update pedido pagamento", err)
	}
	return pedido, nil
}

func (r *pedidoRepository) CadastrarLanche(id int, lanche domain.Produto) (domain.Pedido, error) {
	return r.setSlot(id, "lanche", lanche)
}

func (r *pedidoRepository) CadastrarAcompanhamento(id int, acompanhamento domain.Produto) (domain.Pedido, error) {
	return r.setSlot(id, "acompanhamento", acompanhamento)
}

func (r *pedidoRepository) CadastrarBebida(id int, bebida domain.Produto) (domain.Pedido, error) {
	return r.setSlot(id, "bebida", bebida)
}

// setSlot replaces one product snapshot column. The column name comes from a
// fixed caller-side set, never from input.
func (r *pedidoRepository) setSlot(id int, column string, produto domain.Produto) (domain.Pedido, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	snapshot, err := json.Marshal(produto)
	if err != nil {
		return domain.Pedido{}, dbError("encode produto snapshot", err)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE pedido
		SET `+column+` = $2, data_atualizacao = $3
		WHERE id = $1
		RETURNING `+pedidoColumns,
		id, snapshot, domain.NowTimestamp(),
	)
	pedido, err := scanPedido(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pedido{}, domain.ErrNotFound
		}
		return domain.Pedido{}, dbError("update pedido "+column, err)
	}
	return pedido, nil
}

func encodeSlots(pedido *domain.Pedido) (lanche, acompanhamento, bebida []byte, err error) {
	encode := func(p *domain.Produto) ([]byte, error) {
		if p == nil {
			return nil, nil
		}
		return json.Marshal(p)
	}
	if lanche, err = encode(pedido.Lanche); err != nil {
		return nil, nil, nil, dbError("encode lanche", err)
	}
	if acompanhamento, err = encode(pedido.Acompanhamento); err != nil {
		return nil, nil, nil, dbError("encode acompanhamento", err)
	}
	if bebida, err = encode(pedido.Bebida); err != nil {
		return nil, nil, nil, dbError("encode bebida", err)
	}
	return lanche, acompanhamento, bebida, nil
}

func scanPedido(row rowScanner) (domain.Pedido, error) {
	var pedido domain.Pedido
	var cliente, pagamento sql.NullString
	var status string
	var lanche, acompanhamento, bebida []byte

	if err := row.Scan(
		&pedido.ID, &cliente, &lanche, &acompanhamento, &bebida,
		&pagamento, &status, &pedido.DataCriacao, &pedido.DataAtualizacao,
	); err != nil {
		return domain.Pedido{}, err
	}

	if cliente.Valid {
		cpf, err := domain.NewCPF(cliente.String)
		if err != nil {
			return domain.Pedido{}, err
		}
		pedido.Cliente = &cpf
	}
	if pagamento.Valid {
		pedido.Pagamento = pagamento.String
	}
	pedido.Status = domain.Status(status)

	var err error
	if pedido.Lanche, err = decodeSlot(lanche); err != nil {
		return domain.Pedido{}, err
	}
	if pedido.Acompanhamento, err = decodeSlot(acompanhamento); err != nil {
		return domain.Pedido{}, err
	}
	if pedido.Bebida, err = decodeSlot(bebida); err != nil {
		return domain.Pedido{}, err
	}

	return pedido, nil
}

func decodeSlot(raw []byte) (*domain.Produto, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var produto domain.Produto
	if err := json.Unmarshal(raw, &produto); err != nil {
		return nil, err
	}
	return &produto, nil
}

func scanPedidos(rows *sql.Rows) ([]domain.Pedido, error) {
	pedidos := make([]domain.Pedido, 0)
	for rows.Next() {
		pedido, err := scanPedido(rows)
		if err != nil {
			return nil, dbError("scan pedido row", err)
		}
		pedidos = append(pedidos, pedido)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate pedido rows", err)
	}
	return pedidos, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ domain.PedidoGateway = (*pedidoRepository)(nil)
