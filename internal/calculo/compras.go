package calculo

// RegistroCombustivel é a linha de trabalho da planilha de compras: leituras
// do período, compra do lote, estoques e preços vigentes de um combustível.
// Campos monetários e de litragem chegam como strings no padrão brasileiro,
// exatamente como digitados.
type RegistroCombustivel struct {
	Codigo             string  `json:"codigo"`
	Nome               string  `json:"nome"`
	Inicial            string  `json:"inicial"`
	Fechamento         string  `json:"fechamento"`
	PrecoVendaAtual    string  `json:"preco_venda_atual"`
	PrecoCustoCadastro float64 `json:"preco_custo_cadastro"`
	CompraLitros       string  `json:"compra_lt"`
	CompraValor        string  `json:"compra_rs"`
	EstoqueAnterior    string  `json:"estoque_anterior"`
	EstoqueTanque      string  `json:"estoque_tanque"`
}

// ─── Venda ────────────────────────────────────────────────────────────────────

// LitrosVendidos são os litros do período pela diferença de encerrantes.
// Leitura sem avanço vale 0 (sem sentinela aqui: a planilha de compras soma
// direto, a exibição "-" é responsabilidade da tela de fechamento).
func LitrosVendidos(c RegistroCombustivel) float64 {
	inicial := AnalisarValor(c.Inicial)
	fechamento := AnalisarValor(c.Fechamento)
	if fechamento <= inicial {
		return 0
	}
	return fechamento - inicial
}

// ValorBico é a receita do período: litros vendidos × preço de venda.
func ValorBico(c RegistroCombustivel) float64 {
	return LitrosVendidos(c) * AnalisarValor(c.PrecoVendaAtual)
}

// ─── Compra e custo ───────────────────────────────────────────────────────────

// CustoMedioCompra é o custo por litro do lote comprado no período
// (R$ ÷ litros). Sem compra no período, vale o custo registrado no cadastro
// do combustível.
func CustoMedioCompra(c RegistroCombustivel) float64 {
	litros := AnalisarValor(c.CompraLitros)
	if litros > 0 {
		return AnalisarValor(c.CompraValor) / litros
	}
	return c.PrecoCustoCadastro
}

// DespesaPorLitro rateia a despesa mensal sobre a litragem do período:
// usa os litros vendidos quando houver, senão os comprados, senão 0.
func DespesaPorLitro(registros []RegistroCombustivel, despesasMes string) float64 {
	despesas := AnalisarValor(despesasMes)
	if despesas == 0 {
		return 0
	}

	var vendidos, comprados float64
	for _, c := range registros {
		vendidos += LitrosVendidos(c)
		comprados += AnalisarValor(c.CompraLitros)
	}

	base := vendidos
	if base == 0 {
		base = comprados
	}
	if base == 0 {
		return 0
	}
	return despesas / base
}

// PrecoEquilibrio é o custo total por litro (custo médio + rateio de despesa):
// o preço mínimo de venda sem prejuízo. Sem dado de custo, vale 0.
func PrecoEquilibrio(c RegistroCombustivel, despesaPorLitro float64) float64 {
	custoMedio := CustoMedioCompra(c)
	if custoMedio == 0 {
		return 0
	}
	return custoMedio + despesaPorLitro
}

// LucroPorLitro é o preço de venda menos o preço de equilíbrio.
// Sem preço de equilíbrio (sem dado de custo), vale 0.
func LucroPorLitro(c RegistroCombustivel, despesaPorLitro float64) float64 {
	equilibrio := PrecoEquilibrio(c, despesaPorLitro)
	if equilibrio == 0 {
		return 0
	}
	return AnalisarValor(c.PrecoVendaAtual) - equilibrio
}

// LucroBico é o lucro do período: litros vendidos × lucro por litro.
func LucroBico(c RegistroCombustivel, despesaPorLitro float64) float64 {
	return LitrosVendidos(c) * LucroPorLitro(c, despesaPorLitro)
}

// MargemPct é a margem percentual sobre a receita do período, 0 sem receita.
func MargemPct(c RegistroCombustivel, despesaPorLitro float64) float64 {
	return CalcularPercentual(LucroBico(c, despesaPorLitro), ValorBico(c))
}

// ParticipacaoPct é a fatia do combustível na litragem total do período.
func ParticipacaoPct(c RegistroCombustivel, registros []RegistroCombustivel) float64 {
	var totalLitros float64
	for _, r := range registros {
		totalLitros += LitrosVendidos(r)
	}
	return CalcularPercentual(LitrosVendidos(c), totalLitros)
}

// ─── Estoque ──────────────────────────────────────────────────────────────────

// CompraMaisEstoque é a disponibilidade do período: compra + estoque anterior.
func CompraMaisEstoque(c RegistroCombustivel) float64 {
	return AnalisarValor(c.CompraLitros) + AnalisarValor(c.EstoqueAnterior)
}

// EstoqueHoje é o estoque contábil: disponibilidade menos litros vendidos.
func EstoqueHoje(c RegistroCombustivel) float64 {
	return CompraMaisEstoque(c) - LitrosVendidos(c)
}

// PercaSobra compara o estoque físico aferido no tanque com o contábil.
// Positivo = sobra física, negativo = perda. Sem aferição física, vale 0.
func PercaSobra(c RegistroCombustivel) float64 {
	fisico := AnalisarValor(c.EstoqueTanque)
	if fisico == 0 {
		return 0
	}
	return fisico - EstoqueHoje(c)
}

// ─── Custo médio ponderado ────────────────────────────────────────────────────

// AtualizarCustoMedio recalcula o custo médio ponderado de um combustível ao
// registrar uma compra:
//
//	novoCusto = (estoque × custoAtual + compraLitros × custoCompra) / (estoque + compraLitros)
//
// Estoque negativo (fantasma) é grampeado em zero antes da ponderação: nunca
// pode reduzir o custo calculado. Denominador zero degrada para 0.
func AtualizarCustoMedio(estoqueLitros, custoAtual, compraLitros, custoCompra float64) float64 {
	if estoqueLitros < 0 {
		estoqueLitros = 0
	}
	total := estoqueLitros + compraLitros
	if total <= 0 {
		return 0
	}
	return (estoqueLitros*custoAtual + compraLitros*custoCompra) / total
}

// ─── Totais da planilha ───────────────────────────────────────────────────────

// TotaisRegistro é o rodapé consolidado da planilha de compras.
type TotaisRegistro struct {
	TotalLitros       float64 `json:"total_litros"`
	TotalValorBico    float64 `json:"total_valor_bico"`
	TotalLucroBico    float64 `json:"total_lucro_bico"`
	TotalCompraLitros float64 `json:"total_compra_lt"`
	TotalCompraValor  float64 `json:"total_compra_rs"`
	DespesasMesTotal  float64 `json:"despesas_mes_total"`
	MediaTotal        float64 `json:"media_total"`
	MargemMedia       float64 `json:"margem_media"`
	TotalCustoEstoque float64 `json:"total_custo_estoque"`
	TotalLucroEstoque float64 `json:"total_lucro_estoque"`
	TotalPercaSobra   float64 `json:"total_perca_sobra"`
}

// CalcularTotaisRegistro consolida a planilha de compras inteira.
func CalcularTotaisRegistro(registros []RegistroCombustivel, despesasMes string) TotaisRegistro {
	despesaLt := DespesaPorLitro(registros, despesasMes)

	var t TotaisRegistro
	for _, c := range registros {
		t.TotalLitros += LitrosVendidos(c)
		t.TotalValorBico += ValorBico(c)
		t.TotalLucroBico += LucroBico(c, despesaLt)
		t.TotalCompraLitros += AnalisarValor(c.CompraLitros)
		t.TotalCompraValor += AnalisarValor(c.CompraValor)
		t.TotalCustoEstoque += EstoqueHoje(c) * CustoMedioCompra(c)
		t.TotalLucroEstoque += EstoqueHoje(c) * LucroPorLitro(c, despesaLt)
		t.TotalPercaSobra += PercaSobra(c)
	}

	t.DespesasMesTotal = AnalisarValor(despesasMes)
	if t.TotalCompraLitros > 0 {
		t.MediaTotal = t.TotalCompraValor / t.TotalCompraLitros
	}
	t.MargemMedia = CalcularPercentual(t.TotalLucroBico, t.TotalValorBico)
	return t
}
