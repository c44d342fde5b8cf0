package domain

import "math"

// Categoria is the closed set of product categories the kiosk sells.
type Categoria string

const (
	CategoriaLanche         Categoria = "Lanche"
	CategoriaAcompanhamento Categoria = "Acompanhamento"
	CategoriaBebida         Categoria = "Bebida"
	CategoriaSobremesa      Categoria = "Sobremesa"
)

// ParseCategoria is the canonical name→Categoria conversion. Adapters must
// use it instead of casting, so unknown names are rejected in one place.
func ParseCategoria(input string) (Categoria, error) {
	switch input {
	case "Lanche":
		return CategoriaLanche, nil
	case "Acompanhamento":
		return CategoriaAcompanhamento, nil
	case "Bebida":
		return CategoriaBebida, nil
	case "Sobremesa":
		return CategoriaSobremesa, nil
	default:
		return "", Invalidf("categoria desconhecida: %q", input)
	}
}

func (c Categoria) String() string {
	return string(c)
}

// Ingredientes is the ordered list of ingredient names of a product.
type Ingredientes []string

// NewIngredientes builds the list, failing with Empty when no ingredient (or
// a blank one) is given.
func NewIngredientes(items []string) (Ingredientes, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	for _, item := range items {
		if item == "" {
			return nil, ErrEmpty
		}
	}
	return Ingredientes(items), nil
}

// Produto is a sellable catalog item. Orders embed a snapshot of it, so price
// changes after an order is placed never affect that order.
type Produto struct {
	// ID is assigned by the gateway on creation; 0 is the pre-persistence
	// placeholder and is never reused once committed.
	ID        int    `json:"id"`
	Nome      string `json:"nome"`
	Foto      string `json:"foto"`
	Descricao string `json:"descricao"`
	// Categoria determines which order slot the product may occupy.
	Categoria    Categoria    `json:"categoria"`
	Preco        float64      `json:"preco"`
	Ingredientes Ingredientes `json:"ingredientes"`
	// DataCriacao and DataAtualizacao use TimestampLayout; format validity is
	// enforced on construction and on every mutation.
	DataCriacao     string `json:"data_criacao"`
	DataAtualizacao string `json:"data_atualizacao"`
}

// NewProduto assembles and validates a product.
func NewProduto(id int, nome, foto, descricao string, categoria Categoria, preco float64, ingredientes Ingredientes, dataCriacao, dataAtualizacao string) (Produto, error) {
	p := Produto{
		ID:              id,
		Nome:            nome,
		Foto:            foto,
		Descricao:       descricao,
		Categoria:       categoria,
		Preco:           preco,
		Ingredientes:    ingredientes,
		DataCriacao:     dataCriacao,
		DataAtualizacao: dataAtualizacao,
	}
	if err := p.ValidateEntity(); err != nil {
		return Produto{}, err
	}
	return p, nil
}

// ValidateEntity checks the product invariants: non-blank name, a valid
// category, a non-negative finite price, at least one ingredient and
// well-formed timestamps.
func (p *Produto) ValidateEntity() error {
	if p.Nome == "" {
		return ErrEmpty
	}
	if _, err := ParseCategoria(string(p.Categoria)); err != nil {
		return err
	}
	if err := validatePreco(p.Preco); err != nil {
		return err
	}
	if len(p.Ingredientes) == 0 {
		return ErrEmpty
	}
	if err := assertTimestampFormat(p.DataCriacao); err != nil {
		return err
	}
	return assertTimestampFormat(p.DataAtualizacao)
}

func validatePreco(preco float64) error {
	if math.IsNaN(preco) || math.IsInf(preco, 0) {
		return Invalid("preco deve ser um valor finito")
	}
	if preco < 0 {
		return ErrNonPositive
	}
	return nil
}

// SetNome rejects a blank name.
func (p *Produto) SetNome(nome string) error {
	if nome == "" {
		return ErrEmpty
	}
	p.Nome = nome
	return nil
}

func (p *Produto) SetFoto(foto string) {
	p.Foto = foto
}

// SetDescricao rejects a blank description.
func (p *Produto) SetDescricao(descricao string) error {
	if descricao == "" {
		return ErrEmpty
	}
	p.Descricao = descricao
	return nil
}

func (p *Produto) SetCategoria(categoria Categoria) {
	p.Categoria = categoria
}

// SetPreco rejects negative and non-finite values.
func (p *Produto) SetPreco(preco float64) error {
	if err := validatePreco(preco); err != nil {
		return err
	}
	p.Preco = preco
	return nil
}

// SetIngredientes replaces the ingredient list, keeping the non-empty rule.
func (p *Produto) SetIngredientes(ingredientes Ingredientes) error {
	if len(ingredientes) == 0 {
		return ErrEmpty
	}
	p.Ingredientes = ingredientes
	return nil
}

// SetDataAtualizacao re-validates the format and fails rather than silently
// accepting a malformed value.
func (p *Produto) SetDataAtualizacao(dataAtualizacao string) error {
	if err := assertTimestampFormat(dataAtualizacao); err != nil {
		return err
	}
	p.DataAtualizacao = dataAtualizacao
	return nil
}
