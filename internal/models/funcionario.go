package models

import "time"

// Valores fixos dos campos enumerados. Qualquer valor fora destes
// conjuntos é rejeitado na validação do cadastro.
var (
	EstadosCivis = []string{"Solteiro", "Casado", "Divorciado", "Viúvo", "União Estável"}

	Sexos = []string{"Masculino", "Feminino", "Outro"}

	// UFs brasileiras
	Estados = []string{
		"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS",
		"MG", "PA", "PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC",
		"SP", "SE", "TO",
	}
)

type Funcionario struct {
	ID int64 `bson:"_id,omitempty" json:"id"`

	// Dados pessoais
	Nome           string     `bson:"nome" json:"nome"`
	CPF            string     `bson:"cpf" json:"cpf"` // formato 000.000.000-00, único
	RG             string     `bson:"rg" json:"rg"`
	Idade          int        `bson:"idade" json:"idade"`
	EstadoCivil    string     `bson:"estado_civil" json:"estado_civil"`
	Sexo           string     `bson:"sexo" json:"sexo"`
	DataNascimento *time.Time `bson:"data_nascimento,omitempty" json:"data_nascimento,omitempty"`

	// Endereço
	Rua    string `bson:"rua" json:"rua"`
	Bairro string `bson:"bairro" json:"bairro"`
	Cidade string `bson:"cidade" json:"cidade"`
	CEP    string `bson:"cep" json:"cep"`
	Estado string `bson:"estado" json:"estado"`

	// Cargo
	DataEntrada *time.Time `bson:"data_entrada,omitempty" json:"data_entrada,omitempty"`
	Cargo       string     `bson:"cargo" json:"cargo"`
	Salario     float64    `bson:"salario" json:"salario"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
