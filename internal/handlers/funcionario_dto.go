package handlers

// Campos do cadastro; datas vêm como "yyyy-mm-dd".
// id, created_at e updated_at NÃO vêm do cliente.
type FuncionarioCreateDTO struct {
	Nome           string  `json:"nome"`
	CPF            string  `json:"cpf"`
	RG             string  `json:"rg"`
	Idade          int     `json:"idade"`
	EstadoCivil    string  `json:"estado_civil"`
	Sexo           string  `json:"sexo"`
	DataNascimento string  `json:"data_nascimento,omitempty"`
	Rua            string  `json:"rua,omitempty"`
	Bairro         string  `json:"bairro,omitempty"`
	Cidade         string  `json:"cidade,omitempty"`
	CEP            string  `json:"cep,omitempty"`
	Estado         string  `json:"estado,omitempty"`
	DataEntrada    string  `json:"data_entrada,omitempty"`
	Cargo          string  `json:"cargo,omitempty"`
	Salario        float64 `json:"salario"`
}

// Edição parcial; ponteiros distinguem "omitido" de "informado".
type FuncionarioPatchDTO struct {
	Nome           *string  `json:"nome,omitempty"`
	CPF            *string  `json:"cpf,omitempty"`
	RG             *string  `json:"rg,omitempty"`
	Idade          *int     `json:"idade,omitempty"`
	EstadoCivil    *string  `json:"estado_civil,omitempty"`
	Sexo           *string  `json:"sexo,omitempty"`
	DataNascimento *string  `json:"data_nascimento,omitempty"`
	Rua            *string  `json:"rua,omitempty"`
	Bairro         *string  `json:"bairro,omitempty"`
	Cidade         *string  `json:"cidade,omitempty"`
	CEP            *string  `json:"cep,omitempty"`
	Estado         *string  `json:"estado,omitempty"`
	DataEntrada    *string  `json:"data_entrada,omitempty"`
	Cargo          *string  `json:"cargo,omitempty"`
	Salario        *float64 `json:"salario,omitempty"`
}

// Resposta de listagem: datas já formatadas para exibição (dd/mm/yyyy).
type FuncionarioListItemDTO struct {
	ID             int64   `json:"id"`
	Nome           string  `json:"nome"`
	CPF            string  `json:"cpf"`
	RG             string  `json:"rg"`
	Idade          int     `json:"idade"`
	EstadoCivil    string  `json:"estado_civil"`
	Sexo           string  `json:"sexo"`
	DataNascimento string  `json:"data_nascimento"`
	Rua            string  `json:"rua"`
	Bairro         string  `json:"bairro"`
	Cidade         string  `json:"cidade"`
	CEP            string  `json:"cep"`
	Estado         string  `json:"estado"`
	DataEntrada    string  `json:"data_entrada"`
	Cargo          string  `json:"cargo"`
	Salario        float64 `json:"salario"`
}

// Item do typeahead de busca.
type BuscaItemDTO struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}
