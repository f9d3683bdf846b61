package calculo

// ─── Tipos de entrada ─────────────────────────────────────────────────────────

// InfoCombustivel é a configuração vigente de um combustível no instante do
// cálculo. PrecoVenda é único por combustível: todos os bicos do mesmo código
// vendem ao mesmo preço.
type InfoCombustivel struct {
	Codigo     string  `json:"codigo"`
	Nome       string  `json:"nome"`
	PrecoVenda float64 `json:"preco_venda"`
	PrecoCusto float64 `json:"preco_custo"`
}

// BicoDetalhado é um bico com a bomba e o combustível já resolvidos.
// Configuração somente-leitura para este pacote.
type BicoDetalhado struct {
	ID          uint            `json:"id"`
	BombaID     uint            `json:"bomba_id"`
	Combustivel InfoCombustivel `json:"combustivel"`
}

// SessaoFrentista são os valores declarados por um frentista no turno, já
// normalizados (ver NormalizarSessao). Todos os campos monetários chegam como
// strings no padrão brasileiro.
type SessaoFrentista struct {
	FrentistaID        uint   `json:"frentista_id"`
	ValorCartaoDebito  string `json:"valor_cartao_debito"`
	ValorCartaoCredito string `json:"valor_cartao_credito"`
	ValorNota          string `json:"valor_nota"`
	ValorPix           string `json:"valor_pix"`
	ValorDinheiro      string `json:"valor_dinheiro"`
	ValorBaratao       string `json:"valor_baratao"`
	ValorProdutos      string `json:"valor_produtos"`
	ValorEncerrante    string `json:"valor_encerrante"`
	ValorConferido     string `json:"valor_conferido"`
	Observacoes        string `json:"observacoes"`
}

// SessaoBruta é a forma solta como as linhas persistidas chegam do banco:
// campos opcionais e o alias legado valor_cartao (anterior à separação
// débito/crédito). Nunca circula além da fronteira — ver NormalizarSessao.
type SessaoBruta struct {
	FrentistaID        uint   `json:"frentista_id"`
	ValorCartao        string `json:"valor_cartao"` // legado: cartão sem separação
	ValorCartaoDebito  string `json:"valor_cartao_debito"`
	ValorCartaoCredito string `json:"valor_cartao_credito"`
	ValorNota          string `json:"valor_nota"`
	ValorPix           string `json:"valor_pix"`
	ValorDinheiro      string `json:"valor_dinheiro"`
	ValorBaratao       string `json:"valor_baratao"`
	ValorProdutos      string `json:"valor_produtos"`
	ValorEncerrante    string `json:"valor_encerrante"`
	ValorConferido     string `json:"valor_conferido"`
	Observacoes        string `json:"observacoes"`
}

// NormalizarSessao converte qualquer combinação de campos legados em uma
// SessaoFrentista canônica, uma única vez, na fronteira de dados. O alias
// legado valor_cartao só é aproveitado quando débito e crédito estão ambos
// zerados; a soma total é preservada (a separação real é irrecuperável, o
// valor combinado fica no campo de débito).
func NormalizarSessao(b SessaoBruta) SessaoFrentista {
	s := SessaoFrentista{
		FrentistaID:        b.FrentistaID,
		ValorCartaoDebito:  b.ValorCartaoDebito,
		ValorCartaoCredito: b.ValorCartaoCredito,
		ValorNota:          b.ValorNota,
		ValorPix:           b.ValorPix,
		ValorDinheiro:      b.ValorDinheiro,
		ValorBaratao:       b.ValorBaratao,
		ValorProdutos:      b.ValorProdutos,
		ValorEncerrante:    b.ValorEncerrante,
		ValorConferido:     b.ValorConferido,
		Observacoes:        b.Observacoes,
	}
	if AnalisarValor(b.ValorCartaoDebito) == 0 && AnalisarValor(b.ValorCartaoCredito) == 0 &&
		AnalisarValor(b.ValorCartao) != 0 {
		s.ValorCartaoDebito = b.ValorCartao
	}
	return s
}

// EntradaPagamento é uma forma de pagamento configurada com o total do dia e
// a taxa percentual da operadora.
type EntradaPagamento struct {
	ID    uint    `json:"id"`
	Nome  string  `json:"nome"`
	Tipo  string  `json:"tipo"`
	Valor string  `json:"valor"`
	Taxa  float64 `json:"taxa"`
}

// ─── Consolidação por combustível ─────────────────────────────────────────────

// SumarioCombustivel é o agregado derivado de um combustível: nunca
// persistido, sempre recalculado a partir das leituras.
type SumarioCombustivel struct {
	Codigo string  `json:"codigo"`
	Nome   string  `json:"nome"`
	Litros float64 `json:"litros"`
	Valor  float64 `json:"valor"`
	Preco  float64 `json:"preco"`
}

// AgruparPorCombustivel consolida as vendas de todos os bicos que compartilham
// o mesmo código de combustível. Leituras com sentinela não entram na soma.
// A ordem de saída segue a primeira aparição de cada código na lista de bicos.
func AgruparPorCombustivel(bicos []BicoDetalhado, leituras map[uint]Leitura) []SumarioCombustivel {
	indice := make(map[string]int)
	sumarios := make([]SumarioCombustivel, 0, len(bicos))

	for _, bico := range bicos {
		leitura, ok := leituras[bico.ID]
		if !ok {
			continue
		}

		codigo := bico.Combustivel.Codigo
		pos, existe := indice[codigo]
		if !existe {
			pos = len(sumarios)
			indice[codigo] = pos
			sumarios = append(sumarios, SumarioCombustivel{
				Codigo: codigo,
				Nome:   bico.Combustivel.Nome,
				Preco:  bico.Combustivel.PrecoVenda,
			})
		}

		litros := CalcularLitros(leitura)
		if !litros.Valida() {
			continue
		}
		venda := CalcularVenda(litros.Valor, bico.Combustivel.PrecoVenda)
		sumarios[pos].Litros += litros.Valor
		sumarios[pos].Valor += venda.Valor
	}

	return sumarios
}

// TotaisLeituras é a soma geral de litros e vendas de todos os bicos.
type TotaisLeituras struct {
	Litros         float64 `json:"litros"`
	Valor          float64 `json:"valor"`
	LitrosExibicao string  `json:"litros_exibicao"`
	ValorExibicao  string  `json:"valor_exibicao"`
}

// CalcularTotais soma litros e vendas de todas as leituras válidas.
func CalcularTotais(bicos []BicoDetalhado, leituras map[uint]Leitura) TotaisLeituras {
	var totalLitros, totalValor float64

	for _, bico := range bicos {
		leitura, ok := leituras[bico.ID]
		if !ok {
			continue
		}
		litros := CalcularLitros(leitura)
		if !litros.Valida() {
			continue
		}
		venda := CalcularVenda(litros.Valor, bico.Combustivel.PrecoVenda)
		totalLitros += litros.Valor
		totalValor += venda.Valor
	}

	return TotaisLeituras{
		Litros:         totalLitros,
		Valor:          totalValor,
		LitrosExibicao: FormatarBR(totalLitros, 3),
		ValorExibicao:  ParaReais(totalValor),
	}
}

// ─── Totais de frentistas e pagamentos ────────────────────────────────────────

// TotalSessao soma os seis campos de recebimento declarados por um frentista:
// débito + crédito + nota/vale + PIX + dinheiro + baratão.
func TotalSessao(s SessaoFrentista) float64 {
	return AnalisarValor(s.ValorCartaoDebito) +
		AnalisarValor(s.ValorCartaoCredito) +
		AnalisarValor(s.ValorNota) +
		AnalisarValor(s.ValorPix) +
		AnalisarValor(s.ValorDinheiro) +
		AnalisarValor(s.ValorBaratao)
}

// TotalFrentistas soma o total declarado por todos os frentistas do turno.
func TotalFrentistas(sessoes []SessaoFrentista) float64 {
	var total float64
	for _, s := range sessoes {
		total += TotalSessao(s)
	}
	return total
}

// TotalProdutos soma as vendas de produtos de loja declaradas nas sessões.
func TotalProdutos(sessoes []SessaoFrentista) float64 {
	var total float64
	for _, s := range sessoes {
		total += AnalisarValor(s.ValorProdutos)
	}
	return total
}

// DiferencaSessao é a diferença individual do frentista entre o que declarou
// ter recebido e o que o encerrante registrou. Mesma convenção de sinal da
// diferença geral: positivo = sobra, negativo = falta.
func DiferencaSessao(s SessaoFrentista) float64 {
	return TotalSessao(s) - AnalisarValor(s.ValorEncerrante)
}

// TotalPagamentos soma os totais do dia por forma de pagamento.
func TotalPagamentos(entradas []EntradaPagamento) float64 {
	var total float64
	for _, e := range entradas {
		total += AnalisarValor(e.Valor)
	}
	return total
}

// TaxaEntrada é a taxa da operadora sobre uma entrada: valor × taxa ÷ 100.
func TaxaEntrada(e EntradaPagamento) float64 {
	return AnalisarValor(e.Valor) * e.Taxa / 100
}

// LiquidoEntrada é o valor líquido após a taxa: valor × (1 − taxa ÷ 100).
func LiquidoEntrada(e EntradaPagamento) float64 {
	return AnalisarValor(e.Valor) - TaxaEntrada(e)
}

// TotalTaxas soma as taxas de operadora de todas as formas de pagamento.
func TotalTaxas(entradas []EntradaPagamento) float64 {
	var total float64
	for _, e := range entradas {
		total += TaxaEntrada(e)
	}
	return total
}

// LiquidoPagamentos é o total recebido menos as taxas de operadora.
func LiquidoPagamentos(entradas []EntradaPagamento) float64 {
	return TotalPagamentos(entradas) - TotalTaxas(entradas)
}

// ─── Diferença de caixa ───────────────────────────────────────────────────────

// DiferencaCaixa compara o total declarado pelos frentistas com a venda
// registrada pelos encerrantes.
//
// Convenção de sinal ÚNICA do sistema, aplicada em todos os pontos de uso:
// positivo = sobra (declarado acima da bomba), negativo = falta (frentistas
// declararam menos do que a bomba registrou).
//
// Venda zero com declaração diferente de zero NÃO é suprimida: uma coleta sem
// venda registrada é uma anomalia reportável, não um no-op.
func DiferencaCaixa(totalDeclarado, totalVendas float64) float64 {
	return totalDeclarado - totalVendas
}

// PercentualDiferenca é |diferença| em relação à base, 0 quando a base é 0.
func PercentualDiferenca(diferenca, base float64) float64 {
	return CalcularPercentual(abs(diferenca), base)
}

// CalcularPercentual calcula valor/total × 100 com guarda de divisão por zero.
func CalcularPercentual(valor, total float64) float64 {
	if total == 0 {
		return 0
	}
	return valor / total * 100
}

// ClassificarDiferenca categoriza o percentual de diferença do caixa:
// "normal" até 1%, "atencao" até 5%, "critico" acima disso.
func ClassificarDiferenca(pct float64) string {
	switch {
	case abs(pct) <= 1:
		return "normal"
	case abs(pct) <= 5:
		return "atencao"
	default:
		return "critico"
	}
}

// ─── Validações ───────────────────────────────────────────────────────────────

// TemLeiturasInvalidas informa se algum bico aferido tem fechamento sem avanço.
func TemLeiturasInvalidas(bicos []BicoDetalhado, leituras map[uint]Leitura) bool {
	for _, bico := range bicos {
		leitura, ok := leituras[bico.ID]
		if !ok {
			continue
		}
		if !ValidarLeitura(leitura) {
			return true
		}
	}
	return false
}

// TemSessoesVazias informa se alguma sessão está sem frentista selecionado ou
// sem valor conferido.
func TemSessoesVazias(sessoes []SessaoFrentista) bool {
	for _, s := range sessoes {
		if s.FrentistaID == 0 || AnalisarValor(s.ValorConferido) == 0 {
			return true
		}
	}
	return false
}

// PodeFechar informa se o fechamento está apto a ser salvo: nenhuma leitura
// inválida, nenhuma sessão vazia, pelo menos uma leitura e um frentista.
// O pacote apenas reporta o fato; quem bloqueia o salvamento é a camada acima.
func PodeFechar(bicos []BicoDetalhado, leituras map[uint]Leitura, sessoes []SessaoFrentista) bool {
	return !TemLeiturasInvalidas(bicos, leituras) &&
		!TemSessoesVazias(sessoes) &&
		len(leituras) > 0 &&
		len(sessoes) > 0
}

// ─── Consolidado geral ────────────────────────────────────────────────────────

// ExibicaoFechamento são as strings prontas para a tela do consolidado.
type ExibicaoFechamento struct {
	TotalLitros     string `json:"total_litros"`
	TotalVendas     string `json:"total_vendas"`
	TotalFrentistas string `json:"total_frentistas"`
	Diferenca       string `json:"diferenca"`
	TotalTaxas      string `json:"total_taxas"`
	ValorLiquido    string `json:"valor_liquido"`
}

// Fechamento é o consolidado completo de um turno: sumários, totais,
// diferença de caixa, validações e strings de exibição.
type Fechamento struct {
	SumarioPorCombustivel []SumarioCombustivel `json:"sumario_por_combustivel"`
	TotalLitros           float64              `json:"total_litros"`
	TotalVendas           float64              `json:"total_vendas"`
	TotalFrentistas       float64              `json:"total_frentistas"`
	TotalProdutos         float64              `json:"total_produtos"`
	TotalPagamentos       float64              `json:"total_pagamentos"`
	Diferenca             float64              `json:"diferenca"`
	DiferencaPercentual   float64              `json:"diferenca_percentual"`
	Classificacao         string               `json:"classificacao"`
	TotalTaxas            float64              `json:"total_taxas"`
	ValorLiquido          float64              `json:"valor_liquido"`
	TemLeiturasInvalidas  bool                 `json:"tem_leituras_invalidas"`
	TemSessoesVazias      bool                 `json:"tem_sessoes_vazias"`
	PodeFechar            bool                 `json:"pode_fechar"`
	Exibicao              ExibicaoFechamento   `json:"exibicao"`
}

// Consolidar executa o fechamento completo de um turno em uma chamada: é a
// função que o serviço reinvoca a cada alteração de leitura ou notificação de
// mudança externa. O pacote não guarda nenhum estado entre chamadas.
func Consolidar(
	bicos []BicoDetalhado,
	leituras map[uint]Leitura,
	sessoes []SessaoFrentista,
	pagamentos []EntradaPagamento,
) Fechamento {
	totais := CalcularTotais(bicos, leituras)
	totalFrentistas := TotalFrentistas(sessoes)
	diferenca := DiferencaCaixa(totalFrentistas, totais.Valor)
	diferencaPct := PercentualDiferenca(diferenca, totais.Valor)
	totalTaxas := TotalTaxas(pagamentos)
	liquido := totalFrentistas - totalTaxas

	return Fechamento{
		SumarioPorCombustivel: AgruparPorCombustivel(bicos, leituras),
		TotalLitros:           totais.Litros,
		TotalVendas:           totais.Valor,
		TotalFrentistas:       totalFrentistas,
		TotalProdutos:         TotalProdutos(sessoes),
		TotalPagamentos:       TotalPagamentos(pagamentos),
		Diferenca:             diferenca,
		DiferencaPercentual:   diferencaPct,
		Classificacao:         ClassificarDiferenca(diferencaPct),
		TotalTaxas:            totalTaxas,
		ValorLiquido:          liquido,
		TemLeiturasInvalidas:  TemLeiturasInvalidas(bicos, leituras),
		TemSessoesVazias:      TemSessoesVazias(sessoes),
		PodeFechar:            PodeFechar(bicos, leituras, sessoes),
		Exibicao: ExibicaoFechamento{
			TotalLitros:     totais.LitrosExibicao,
			TotalVendas:     totais.ValorExibicao,
			TotalFrentistas: ParaReais(totalFrentistas),
			Diferenca:       ParaReais(diferenca),
			TotalTaxas:      ParaReais(totalTaxas),
			ValorLiquido:    ParaReais(liquido),
		},
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
