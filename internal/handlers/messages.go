package handlers

// Mensagens exibidas ao usuário (mantidas em português, como no UI).
const (
	msgFuncionarioNaoEncontrado = "Funcionário não encontrado"
	msgContratoNaoEncontrado    = "Contrato não encontrado"
	msgTemplateNaoEncontrado    = "Template de contrato não encontrado"
	msgIDInvalido               = "ID do funcionário inválido"
	msgArquivoInvalido          = "Arquivo inválido"
	msgArquivoMuitoGrande       = "Arquivo muito grande"
	msgNenhumArquivo            = "Nenhum arquivo foi enviado"
	msgContratoAssinado         = "Contrato assinado com sucesso!"
	msgCamposObrigatorios       = "ID do funcionário e tipo de contrato são obrigatórios"
	msgErroProcessamento        = "Erro ao processar a requisição"
	msgErroArquivo              = "Erro ao processar arquivo"
	msgArquivoNaoEncontrado     = "Arquivo não encontrado"
	msgArquivoForaDoDisco       = "Arquivo não encontrado no sistema de arquivos"
)
