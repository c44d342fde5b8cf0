package usecase

import (
	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// CreateProdutoInput carries the fields of a new catalog product. The id and
// timestamps are assigned by the gateway.
type CreateProdutoInput struct {
	Nome         string
	Foto         string
	Descricao    string
	Categoria    domain.Categoria
	Preco        float64
	Ingredientes domain.Ingredientes
}

// UpdateProdutoInput is a partial update: each present field overwrites,
// absent fields are untouched.
type UpdateProdutoInput struct {
	Nome         *string
	Foto         *string
	Descricao    *string
	Categoria    *domain.Categoria
	Preco        *float64
	Ingredientes *domain.Ingredientes
}

// ProdutoUseCase orchestrates the product catalog through its gateway guard.
type ProdutoUseCase struct {
	produtos *ProdutoGuard
	logger   *log.Entry
}

// NewProdutoUseCase builds the catalog use-case.
func NewProdutoUseCase(produtos *ProdutoGuard, logger *log.Entry) *ProdutoUseCase {
	if logger == nil {
		logger = log.WithField("component", "produto-usecase")
	}
	return &ProdutoUseCase{produtos: produtos, logger: logger}
}

func (u *ProdutoUseCase) GetProdutos() ([]domain.Produto, error) {
	gw := u.produtos.Acquire()
	defer u.produtos.Release()
	return gw.GetProdutos()
}

func (u *ProdutoUseCase) GetProdutoByID(id int) (domain.Produto, error) {
	gw := u.produtos.Acquire()
	defer u.produtos.Release()
	return gw.GetProdutoByID(id)
}

func (u *ProdutoUseCase) GetProdutosByCategoria(categoria domain.Categoria) ([]domain.Produto, error) {
	gw := u.produtos.Acquire()
	defer u.produtos.Release()
	return gw.GetProdutosByCategoria(categoria)
}

// CreateProduto validates the entity and hands it to the gateway with the id
// placeholder; the gateway assigns the real id and timestamps.
func (u *ProdutoUseCase) CreateProduto(input CreateProdutoInput) (domain.Produto, error) {
	now := domain.NowTimestamp()
	produto, err := domain.NewProduto(
		0, input.Nome, input.Foto, input.Descricao,
		input.Categoria, input.Preco, input.Ingredientes,
		now, now,
	)
	if err != nil {
		return domain.Produto{}, err
	}

	gw := u.produtos.Acquire()
	defer u.produtos.Release()

	created, err := gw.CreateProduto(produto)
	if err != nil {
		return domain.Produto{}, err
	}
	u.logger.WithFields(log.Fields{
		"produto_id": created.ID,
		"categoria":  created.Categoria.String(),
	}).Info("produto criado")
	return created, nil
}

// UpdateProduto applies a partial update on top of the stored product. The
// read and the write happen inside one critical section.
func (u *ProdutoUseCase) UpdateProduto(id int, fields UpdateProdutoInput) (domain.Produto, error) {
	gw := u.produtos.Acquire()
	defer u.produtos.Release()

	produto, err := gw.GetProdutoByID(id)
	if err != nil {
		return domain.Produto{}, err
	}

	if fields.Nome != nil {
		if err := produto.SetNome(*fields.Nome); err != nil {
			return domain.Produto{}, err
		}
	}
	if fields.Foto != nil {
		produto.SetFoto(*fields.Foto)
	}
	if fields.Descricao != nil {
		if err := produto.SetDescricao(*fields.Descricao); err != nil {
			return domain.Produto{}, err
		}
	}
	if fields.Categoria != nil {
		if _, err := domain.ParseCategoria(fields.Categoria.String()); err != nil {
			return domain.Produto{}, err
		}
		produto.SetCategoria(*fields.Categoria)
	}
	if fields.Preco != nil {
		if err := produto.SetPreco(*fields.Preco); err != nil {
			return domain.Produto{}, err
		}
	}
	if fields.Ingredientes != nil {
		if err := produto.SetIngredientes(*fields.Ingredientes); err != nil {
			return domain.Produto{}, err
		}
	}
	if err := produto.SetDataAtualizacao(domain.NowTimestamp()); err != nil {
		return domain.Produto{}, err
	}

	return gw.UpdateProduto(produto)
}

func (u *ProdutoUseCase) DeleteProduto(id int) error {
	gw := u.produtos.Acquire()
	defer u.produtos.Release()

	if err := gw.DeleteProduto(id); err != nil {
		return err
	}
	u.logger.WithField("produto_id", id).Info("produto removido")
	return nil
}
