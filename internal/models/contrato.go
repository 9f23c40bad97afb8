package models

import "time"

// Tipos de contrato suportados; cada um mapeia para um template HTML.
const (
	TipoContratoEntrada = "contrato_entrada"
	TipoTermoUso        = "termo_uso"
	TipoSindicato       = "sindicato"
)

var TiposContrato = []string{TipoContratoEntrada, TipoTermoUso, TipoSindicato}

// Status do ciclo de vida de um contrato. A transição é unidirecional:
// aguardando assinatura -> assinado, disparada apenas pelo upload do
// arquivo assinado.
const (
	StatusAguardandoAssinatura = "aguardando assinatura"
	StatusAssinado             = "assinado"
)

type Contrato struct {
	ID              int64      `bson:"_id,omitempty" json:"id"`
	Funcionario     int64      `bson:"funcionario" json:"funcionario"`
	Arquivo         string     `bson:"arquivo" json:"arquivo"`
	Status          string     `bson:"status" json:"status"`
	DataGeracao     time.Time  `bson:"data_geracao" json:"data_geracao"`
	ArquivoAssinado string     `bson:"arquivo_assinado,omitempty" json:"arquivo_assinado,omitempty"`
	DataAssinatura  *time.Time `bson:"data_assinatura,omitempty" json:"data_assinatura,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}
