package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

const opTimeout = 5 * time.Second

const produtoColumns = "id, nome, foto, descricao, categoria, preco, ingredientes, data_criacao, data_atualizacao"

type produtoRepository struct {
	db *sql.DB
}

// NewProdutoRepository creates the PostgreSQL-backed ProdutoGateway.
func NewProdutoRepository(store *Store) domain.ProdutoGateway {
	return &produtoRepository{db: store.DB()}
}

func (r *produtoRepository) GetProdutos() ([]domain.Produto, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+produtoColumns+` FROM produto ORDER BY id ASC`)
	if err != nil {
		return nil, dbError("list produtos", err)
	}
	defer rows.Close()

	return scanProdutos(rows)
}

func (r *produtoRepository) GetProdutoByID(id int) (domain.Produto, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+produtoColumns+` FROM produto WHERE id = $1`, id)
	produto, err := scanProduto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Produto{}, domain.ErrNotFound
		}
		return domain.Produto{}, dbError("select produto", err)
	}
	return produto, nil
}

func (r *produtoRepository) GetProdutosByCategoria(categoria domain.Categoria) ([]domain.Produto, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+produtoColumns+` FROM produto WHERE categoria = $1 ORDER BY id ASC`,
		string(categoria),
	)
	if err != nil {
		return nil, dbError("list produtos by categoria", err)
	}
	defer rows.Close()

	return scanProdutos(rows)
}

func (r *produtoRepository) CreateProduto(produto domain.Produto) (domain.Produto, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	ingredientes, err := json.Marshal(produto.Ingredientes)
	if err != nil {
		return domain.Produto{}, dbError("encode ingredientes", err)
	}

	now := domain.NowTimestamp()
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO produto (nome, foto, descricao, categoria, preco, ingredientes, data_criacao, data_atualizacao)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`,
		produto.Nome, produto.Foto, produto.Descricao, string(produto.Categoria),
		produto.Preco, ingredientes, now, now,
	).Scan(&produto.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Produto{}, domain.ErrAlreadyExists
		}
		return domain.Produto{}, dbError("insert produto", err)
	}

	produto.DataCriacao = now
	produto.DataAtualizacao = now
	return produto, nil
}

func (r *produtoRepository) UpdateProduto(produto domain.Produto) (domain.Produto, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	ingredientes, err := json.Marshal(produto.Ingredientes)
	if err != nil {
		return domain.Produto{}, dbError("encode ingredientes", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE produto
		SET nome = $1,
		    foto = $2,
		    descricao = $3,
		    categoria = $4,
		    preco = $5,
		    ingredientes = $6,
		    data_atualizacao = $7
		WHERE id = $8
	`,
		produto.Nome, produto.Foto, produto.Descricao, string(produto.Categoria),
		produto.Preco, ingredientes, produto.DataAtualizacao, produto.ID,
	)
	if err != nil {
		return domain.Produto{}, dbError("update produto", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Produto{}, dbError("rows affected", err)
	}
	if affected == 0 {
		return domain.Produto{}, domain.ErrNotFound
	}

	return produto, nil
}

func (r *produtoRepository) DeleteProduto(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM produto WHERE id = $1`, id)
	if err != nil {
		return dbError("delete produto", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return dbError("rows affected", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduto(row rowScanner) (domain.Produto, error) {
	var produto domain.Produto
	var categoria string
	var ingredientes []byte

	if err := row.Scan(
		&produto.ID, &produto.Nome, &produto.Foto, &produto.Descricao, &categoria,
		&produto.Preco, &ingredientes, &produto.DataCriacao, &produto.DataAtualizacao,
	); err != nil {
		return domain.Produto{}, err
	}
	produto.Categoria = domain.Categoria(categoria)
	if err := json.Unmarshal(ingredientes, &produto.Ingredientes); err != nil {
		return domain.Produto{}, fmt.Errorf("decode ingredientes: %w", err)
	}
	return produto, nil
}

func scanProdutos(rows *sql.Rows) ([]domain.Produto, error) {
	produtos := make([]domain.Produto, 0)
	for rows.Next() {
		produto, err := scanProduto(rows)
		if err != nil {
			return nil, dbError("scan produto row", err)
		}
		produtos = append(produtos, produto)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("iterate produto rows", err)
	}
	return produtos, nil
}

// dbError folds a store failure into the Database kind; the detail stays in
// logs and never reaches API clients.
func dbError(op string, err error) error {
	return domain.DatabaseError(fmt.Sprintf("%s: %v", op, err))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.ProdutoGateway = (*produtoRepository)(nil)
