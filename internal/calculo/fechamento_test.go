package calculo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bicosDeTeste() []BicoDetalhado {
	gc := InfoCombustivel{Codigo: "GC", Nome: "Gasolina Comum", PrecoVenda: 5.0, PrecoCusto: 4.1}
	et := InfoCombustivel{Codigo: "ET", Nome: "Etanol", PrecoVenda: 4.0, PrecoCusto: 3.2}
	return []BicoDetalhado{
		{ID: 1, BombaID: 1, Combustivel: gc},
		{ID: 2, BombaID: 1, Combustivel: gc},
		{ID: 3, BombaID: 2, Combustivel: et},
	}
}

// ── Agrupamento por combustível ──────────────────────────────────────────────

func TestAgruparPorCombustivelIgnoraSentinela(t *testing.T) {
	bicos := bicosDeTeste()
	leituras := map[uint]Leitura{
		1: {Inicial: "100,000", Fechamento: "110,000"}, // 10 L válidos
		2: {Inicial: "500,000", Fechamento: "400,000"}, // inválida → sentinela
	}

	sumarios := AgruparPorCombustivel(bicos, leituras)
	require.Len(t, sumarios, 1)
	assert.Equal(t, "GC", sumarios[0].Codigo)
	assert.InDelta(t, 10.0, sumarios[0].Litros, 1e-9)
	assert.InDelta(t, 50.0, sumarios[0].Valor, 1e-9)
	assert.InDelta(t, 5.0, sumarios[0].Preco, 1e-9)
}

func TestAgruparPorCombustivelSomaBicosDoMesmoCodigo(t *testing.T) {
	bicos := bicosDeTeste()
	leituras := map[uint]Leitura{
		1: {Inicial: "100,000", Fechamento: "110,000"}, // GC 10 L
		2: {Inicial: "200,000", Fechamento: "215,000"}, // GC 15 L
		3: {Inicial: "300,000", Fechamento: "320,000"}, // ET 20 L
	}

	sumarios := AgruparPorCombustivel(bicos, leituras)
	require.Len(t, sumarios, 2)
	assert.Equal(t, "GC", sumarios[0].Codigo)
	assert.InDelta(t, 25.0, sumarios[0].Litros, 1e-9)
	assert.InDelta(t, 125.0, sumarios[0].Valor, 1e-9)
	assert.Equal(t, "ET", sumarios[1].Codigo)
	assert.InDelta(t, 20.0, sumarios[1].Litros, 1e-9)
	assert.InDelta(t, 80.0, sumarios[1].Valor, 1e-9)
}

func TestCalcularTotais(t *testing.T) {
	bicos := bicosDeTeste()
	leituras := map[uint]Leitura{
		1: {Inicial: "100,000", Fechamento: "110,000"},
		3: {Inicial: "300,000", Fechamento: "320,000"},
	}

	totais := CalcularTotais(bicos, leituras)
	assert.InDelta(t, 30.0, totais.Litros, 1e-9)
	assert.InDelta(t, 130.0, totais.Valor, 1e-9)
	assert.Equal(t, "30,000", totais.LitrosExibicao)
	assert.Equal(t, "R$ 130,00", totais.ValorExibicao)
}

// ── Sessões de frentistas ────────────────────────────────────────────────────

func TestTotalSessao(t *testing.T) {
	s := SessaoFrentista{
		ValorCartaoDebito:  "100,00",
		ValorCartaoCredito: "50,00",
		ValorPix:           "0,00",
		ValorDinheiro:      "25,00",
		ValorNota:          "0,00",
		ValorBaratao:       "0,00",
	}
	assert.InDelta(t, 175.0, TotalSessao(s), 1e-9)
}

func TestTotalFrentistas(t *testing.T) {
	sessoes := []SessaoFrentista{
		{FrentistaID: 1, ValorDinheiro: "500,00", ValorPix: "250,00"},
		{FrentistaID: 2, ValorCartaoDebito: "200,00", ValorBaratao: "50,00"},
	}
	assert.InDelta(t, 1000.0, TotalFrentistas(sessoes), 1e-9)
}

func TestNormalizarSessaoAliasLegado(t *testing.T) {
	// Linha antiga: só valor_cartao combinado preenchido
	s := NormalizarSessao(SessaoBruta{FrentistaID: 7, ValorCartao: "300,00", ValorDinheiro: "100,00"})
	assert.InDelta(t, 400.0, TotalSessao(s), 1e-9)
	assert.Equal(t, "300,00", s.ValorCartaoDebito)

	// Linha nova: débito/crédito separados ganham do alias
	s = NormalizarSessao(SessaoBruta{
		ValorCartao:        "999,99",
		ValorCartaoDebito:  "120,00",
		ValorCartaoCredito: "80,00",
	})
	assert.InDelta(t, 200.0, TotalSessao(s), 1e-9)
}

func TestDiferencaSessao(t *testing.T) {
	s := SessaoFrentista{
		ValorDinheiro:   "950,00",
		ValorEncerrante: "1.000,00",
	}
	// Declarou menos do que a bomba registrou: falta de R$ 50
	assert.InDelta(t, -50.0, DiferencaSessao(s), 1e-9)
}

// ── Pagamentos e taxas ───────────────────────────────────────────────────────

func TestTaxasEPagamentos(t *testing.T) {
	entradas := []EntradaPagamento{
		{ID: 1, Nome: "Cartão Crédito", Tipo: "cartao_credito", Valor: "200,00", Taxa: 2},
		{ID: 2, Nome: "Dinheiro", Tipo: "dinheiro", Valor: "300,00", Taxa: 0},
	}

	assert.InDelta(t, 500.0, TotalPagamentos(entradas), 1e-9)
	assert.InDelta(t, 4.0, TotalTaxas(entradas), 1e-9)
	assert.InDelta(t, 496.0, LiquidoPagamentos(entradas), 1e-9)

	// net(entry) = valor × (1 − taxa/100)
	assert.InDelta(t, 196.0, LiquidoEntrada(entradas[0]), 1e-9)
}

// ── Diferença de caixa ───────────────────────────────────────────────────────

func TestDiferencaCaixaConvencaoDeSinal(t *testing.T) {
	// Bomba registrou 1000, frentistas declararam 950: falta de 50 (negativo)
	diferenca := DiferencaCaixa(950.00, 1000.00)
	assert.InDelta(t, -50.0, diferenca, 1e-9)
	assert.InDelta(t, 5.0, PercentualDiferenca(diferenca, 1000.00), 1e-9)

	// Declararam mais: sobra (positivo)
	assert.InDelta(t, 30.0, DiferencaCaixa(1030.00, 1000.00), 1e-9)
}

func TestDiferencaComVendaZeradaNaoESuprimida(t *testing.T) {
	// Coleta declarada sem venda registrada é anomalia reportável
	diferenca := DiferencaCaixa(200.00, 0)
	assert.InDelta(t, 200.0, diferenca, 1e-9)
	// Percentual degrada para 0 na base zero, sem divisão por zero
	assert.Zero(t, PercentualDiferenca(diferenca, 0))
}

func TestClassificarDiferenca(t *testing.T) {
	assert.Equal(t, "normal", ClassificarDiferenca(0))
	assert.Equal(t, "normal", ClassificarDiferenca(1))
	assert.Equal(t, "atencao", ClassificarDiferenca(3.5))
	assert.Equal(t, "atencao", ClassificarDiferenca(-5))
	assert.Equal(t, "critico", ClassificarDiferenca(5.1))
	assert.Equal(t, "critico", ClassificarDiferenca(-12))
}

// ── Validações ───────────────────────────────────────────────────────────────

func TestTemLeiturasInvalidas(t *testing.T) {
	bicos := bicosDeTeste()

	assert.False(t, TemLeiturasInvalidas(bicos, map[uint]Leitura{
		1: {Inicial: "100,000", Fechamento: "110,000"},
	}))
	assert.True(t, TemLeiturasInvalidas(bicos, map[uint]Leitura{
		1: {Inicial: "110,000", Fechamento: "100,000"},
	}))
	// Bico sem leitura não conta como inválido
	assert.False(t, TemLeiturasInvalidas(bicos, map[uint]Leitura{}))
}

func TestTemSessoesVazias(t *testing.T) {
	assert.True(t, TemSessoesVazias([]SessaoFrentista{{FrentistaID: 0, ValorConferido: "100,00"}}))
	assert.True(t, TemSessoesVazias([]SessaoFrentista{{FrentistaID: 1, ValorConferido: "0,00"}}))
	assert.False(t, TemSessoesVazias([]SessaoFrentista{{FrentistaID: 1, ValorConferido: "100,00"}}))
}

func TestPodeFechar(t *testing.T) {
	bicos := bicosDeTeste()
	leituras := map[uint]Leitura{1: {Inicial: "100,000", Fechamento: "110,000"}}
	sessoes := []SessaoFrentista{{FrentistaID: 1, ValorConferido: "50,00"}}

	assert.True(t, PodeFechar(bicos, leituras, sessoes))
	assert.False(t, PodeFechar(bicos, map[uint]Leitura{}, sessoes))
	assert.False(t, PodeFechar(bicos, leituras, nil))
	assert.False(t, PodeFechar(bicos, leituras, []SessaoFrentista{{FrentistaID: 0}}))
}

// ── Consolidado ──────────────────────────────────────────────────────────────

func TestConsolidar(t *testing.T) {
	bicos := bicosDeTeste()
	leituras := map[uint]Leitura{
		1: {Inicial: "100,000", Fechamento: "300,000"}, // GC 200 L → R$ 1000
	}
	sessoes := []SessaoFrentista{
		{FrentistaID: 1, ValorDinheiro: "600,00", ValorPix: "350,00", ValorConferido: "950,00"},
	}
	pagamentos := []EntradaPagamento{
		{ID: 1, Nome: "PIX", Tipo: "pix", Valor: "350,00", Taxa: 0},
		{ID: 2, Nome: "Dinheiro", Tipo: "dinheiro", Valor: "600,00", Taxa: 0},
	}

	f := Consolidar(bicos, leituras, sessoes, pagamentos)

	assert.InDelta(t, 200.0, f.TotalLitros, 1e-9)
	assert.InDelta(t, 1000.0, f.TotalVendas, 1e-9)
	assert.InDelta(t, 950.0, f.TotalFrentistas, 1e-9)
	assert.InDelta(t, -50.0, f.Diferenca, 1e-9)
	assert.InDelta(t, 5.0, f.DiferencaPercentual, 1e-9)
	assert.Equal(t, "atencao", f.Classificacao)
	assert.False(t, f.TemLeiturasInvalidas)
	assert.False(t, f.TemSessoesVazias)
	assert.True(t, f.PodeFechar)

	assert.Equal(t, "200,000", f.Exibicao.TotalLitros)
	assert.Equal(t, "R$ 1.000,00", f.Exibicao.TotalVendas)
	assert.Equal(t, "-R$ 50,00", f.Exibicao.Diferenca)
}
