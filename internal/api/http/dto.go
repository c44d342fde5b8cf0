package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/soat-kiosk/lanchonete/internal/domain"
	"github.com/soat-kiosk/lanchonete/internal/usecase"
)

var validate = validator.New()

// createProdutoRequest is the POST produto body.
type createProdutoRequest struct {
	Nome         string   `json:"nome" validate:"required"`
	Foto         string   `json:"foto"`
	Descricao    string   `json:"descricao" validate:"required"`
	Categoria    string   `json:"categoria" validate:"required"`
	Preco        float64  `json:"preco" validate:"gte=0"`
	Ingredientes []string `json:"ingredientes" validate:"required,min=1,dive,required"`
}

func (r createProdutoRequest) toCreateInput() (usecase.CreateProdutoInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.CreateProdutoInput{}, domain.Invalid("Input inválido")
	}
	categoria, err := domain.ParseCategoria(r.Categoria)
	if err != nil {
		return usecase.CreateProdutoInput{}, err
	}
	ingredientes, err := domain.NewIngredientes(r.Ingredientes)
	if err != nil {
		return usecase.CreateProdutoInput{}, err
	}
	return usecase.CreateProdutoInput{
		Nome:         r.Nome,
		Foto:         r.Foto,
		Descricao:    r.Descricao,
		Categoria:    categoria,
		Preco:        r.Preco,
		Ingredientes: ingredientes,
	}, nil
}

// updateProdutoRequest is the PUT produto body: each present field overwrites,
// absent fields leave the stored value untouched.
type updateProdutoRequest struct {
	Nome         *string   `json:"nome" validate:"omitempty,min=1"`
	Foto         *string   `json:"foto"`
	Descricao    *string   `json:"descricao" validate:"omitempty,min=1"`
	Categoria    *string   `json:"categoria"`
	Preco        *float64  `json:"preco" validate:"omitempty,gte=0"`
	Ingredientes *[]string `json:"ingredientes" validate:"omitempty,min=1,dive,required"`
}

func (r updateProdutoRequest) toInput() (usecase.UpdateProdutoInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.UpdateProdutoInput{}, domain.Invalid("Input inválido")
	}
	input := usecase.UpdateProdutoInput{
		Nome:      r.Nome,
		Foto:      r.Foto,
		Descricao: r.Descricao,
		Preco:     r.Preco,
	}
	if r.Categoria != nil {
		categoria, err := domain.ParseCategoria(*r.Categoria)
		if err != nil {
			return usecase.UpdateProdutoInput{}, err
		}
		input.Categoria = &categoria
	}
	if r.Ingredientes != nil {
		ingredientes, err := domain.NewIngredientes(*r.Ingredientes)
		if err != nil {
			return usecase.UpdateProdutoInput{}, err
		}
		input.Ingredientes = &ingredientes
	}
	return input, nil
}

// createPedidoRequest is the POST pedido body; every reference is optional but
// the entity later requires at least one product slot.
type createPedidoRequest struct {
	ClienteID        *string `json:"cliente_id"`
	LancheID         *int    `json:"lanche_id" validate:"omitempty,gte=1"`
	AcompanhamentoID *int    `json:"acompanhamento_id" validate:"omitempty,gte=1"`
	BebidaID         *int    `json:"bebida_id" validate:"omitempty,gte=1"`
}

func (r createPedidoRequest) toInput() (usecase.CreatePedidoInput, error) {
	if err := validate.Struct(r); err != nil {
		return usecase.CreatePedidoInput{}, domain.Invalid("Input inválido")
	}
	input := usecase.CreatePedidoInput{
		LancheID:         r.LancheID,
		AcompanhamentoID: r.AcompanhamentoID,
		BebidaID:         r.BebidaID,
	}
	if r.ClienteID != nil {
		cpf, err := domain.NewCPF(*r.ClienteID)
		if err != nil {
			return usecase.CreatePedidoInput{}, err
		}
		input.ClienteID = &cpf
	}
	return input, nil
}
