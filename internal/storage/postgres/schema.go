package postgres

// Timestamps are stored in the domain's textual layout on purpose: the format
// is an entity invariant and round-trips unchanged through the store.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS produto (
		id SERIAL PRIMARY KEY,
		nome TEXT NOT NULL,
		foto TEXT NOT NULL,
		descricao TEXT NOT NULL,
		categoria VARCHAR(32) NOT NULL,
		preco DOUBLE PRECISION NOT NULL,
		ingredientes JSONB NOT NULL,
		data_criacao VARCHAR(32) NOT NULL,
		data_atualizacao VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pedido (
		id SERIAL PRIMARY KEY,
		cliente VARCHAR(11),
		lanche JSONB,
		acompanhamento JSONB,
		bebida JSONB,
		pagamento TEXT,
		status VARCHAR(32) NOT NULL,
		data_criacao VARCHAR(32) NOT NULL,
		data_atualizacao VARCHAR(32) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pedido_status ON pedido (status)`,
}
