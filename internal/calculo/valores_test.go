package calculo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ── AnalisarValor ────────────────────────────────────────────────────────────

func TestAnalisarValorFormatoBR(t *testing.T) {
	// Vírgula presente: formato BR tradicional, pontos são milhar
	assert.InDelta(t, 1234.56, AnalisarValor("1.234,56"), 1e-9)
	assert.InDelta(t, 1234.5, AnalisarValor("1234,5"), 1e-9)
	assert.InDelta(t, 1718359.423, AnalisarValor("1.718.359,423"), 1e-9)
	assert.InDelta(t, 0.5, AnalisarValor("0,5"), 1e-9)
}

func TestAnalisarValorPrefixoMoeda(t *testing.T) {
	assert.InDelta(t, 1234.56, AnalisarValor("R$ 1.234,56"), 1e-9)
	assert.InDelta(t, 10, AnalisarValor("R$10,00"), 1e-9)
	assert.InDelta(t, 1234.56, AnalisarValor("  R$  1.234,56  "), 1e-9)
}

func TestAnalisarValorConvencaoEncerrante(t *testing.T) {
	// Sem vírgula: os últimos 3 dígitos são SEMPRE decimais
	assert.InDelta(t, 1718359.423, AnalisarValor("1718359423"), 1e-9)
	assert.InDelta(t, 1718359.423, AnalisarValor("1.718.359.423"), 1e-9)
	assert.InDelta(t, 1.5, AnalisarValor("1500"), 1e-9)

	// 3 dígitos ou menos: valor todo decimal
	assert.InDelta(t, 0.423, AnalisarValor("423"), 1e-9)
	assert.InDelta(t, 0.042, AnalisarValor("42"), 1e-9)
	assert.InDelta(t, 0.007, AnalisarValor("7"), 1e-9)
}

func TestAnalisarValorPrecedenciaDaVirgula(t *testing.T) {
	// Vírgula ganha da regra do encerrante mesmo com pontos presentes
	assert.InDelta(t, 1234.5, AnalisarValor("1.234,5"), 1e-9)
	// Sem vírgula, a mesma fileira cai na regra do encerrante
	assert.InDelta(t, 1.234, AnalisarValor("1.234"), 1e-9)
}

func TestAnalisarValorEntradaInvalida(t *testing.T) {
	assert.Zero(t, AnalisarValor(""))
	assert.Zero(t, AnalisarValor("abc"))
	assert.Zero(t, AnalisarValor("   "))
	assert.Zero(t, AnalisarValor("R$"))
	assert.Zero(t, AnalisarValor(","))
}

func TestValorDeNumericoTransparente(t *testing.T) {
	// Valores já numéricos não passam pelas heurísticas de string
	assert.InDelta(t, 1500.0, ValorDe(1500.0), 1e-9)
	assert.InDelta(t, 1500.0, ValorDe(1500), 1e-9)
	assert.InDelta(t, 3.2, ValorDe(decimal.NewFromFloat(3.2)), 1e-9)
	assert.Zero(t, ValorDe(nil))

	// Strings ainda usam o parser completo
	assert.InDelta(t, 1.5, ValorDe("1500"), 1e-9)
}

// ── FormatarBR / ParaReais ───────────────────────────────────────────────────

func TestFormatarBR(t *testing.T) {
	assert.Equal(t, "1.234,567", FormatarBR(1234.567, 3))
	assert.Equal(t, "1.234,50", FormatarBR(1234.5, 2))
	assert.Equal(t, "0,000", FormatarBR(0, 3))
	assert.Equal(t, "1.718.359,423", FormatarBR(1718359.423, 3))
	assert.Equal(t, "-1.234,500", FormatarBR(-1234.5, 3))
	assert.Equal(t, "500,250", FormatarBR(500.25, 3))
}

func TestParaReais(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", ParaReais(1234.56))
	assert.Equal(t, "R$ 0,00", ParaReais(0))
	assert.Equal(t, "R$ 550,00", ParaReais(550))
	assert.Equal(t, "-R$ 50,00", ParaReais(-50))
	assert.Equal(t, "R$ 1.000.000,00", ParaReais(1000000))
}

func TestRoundTripParserFormatador(t *testing.T) {
	// parseValue(toFixedBR(x, 3)) == x dentro de 1e-9
	valores := []float64{0, 0.007, 0.423, 1.5, 500.25, 1234.567, 1718359.423, 999999.999}
	for _, x := range valores {
		assert.InDelta(t, x, AnalisarValor(FormatarBR(x, 3)), 1e-9, "valor %v", x)
	}
}

func TestFormatacaoIdempotente(t *testing.T) {
	// Ciclos repetidos de formatar→parsear→formatar não podem derivar
	valores := []float64{0, 10, 550, 1234.56, 1718359.42}
	for _, x := range valores {
		uma := ParaReais(x)
		duas := ParaReais(AnalisarValor(uma))
		assert.Equal(t, uma, duas, "valor %v", x)
	}
}

// ── Máscaras de digitação ────────────────────────────────────────────────────

func TestFormatarEncerranteDigitando(t *testing.T) {
	assert.Equal(t, "", FormatarEncerranteDigitando(""))
	assert.Equal(t, "1.234", FormatarEncerranteDigitando("1234"))
	assert.Equal(t, "1.234,5", FormatarEncerranteDigitando("1234,5"))
	// Preserva o que o usuário digitou depois da vírgula, sem completar zeros
	assert.Equal(t, "10,", FormatarEncerranteDigitando("10,"))
	assert.Equal(t, "10,5", FormatarEncerranteDigitando("10,5"))
	// Zeros à esquerda caem, mas "0" solitário fica
	assert.Equal(t, "10", FormatarEncerranteDigitando("010"))
	assert.Equal(t, "0", FormatarEncerranteDigitando("0"))
	assert.Equal(t, "0,5", FormatarEncerranteDigitando(",5"))
	// Lixo não-numérico é descartado
	assert.Equal(t, "1.234", FormatarEncerranteDigitando("1a2b3c4"))
}

func TestFormatarMoedaDigitando(t *testing.T) {
	assert.Equal(t, "", FormatarMoedaDigitando(""))
	assert.Equal(t, "", FormatarMoedaDigitando(","))
	assert.Equal(t, "R$ 10", FormatarMoedaDigitando("10"))
	assert.Equal(t, "R$ 1.234", FormatarMoedaDigitando("1234"))
	assert.Equal(t, "R$ 1.234,5", FormatarMoedaDigitando("1234,5"))
	assert.Equal(t, "R$ 10,", FormatarMoedaDigitando("10,"))
	// Reformatar a própria saída é estável
	assert.Equal(t, "R$ 1.234,5", FormatarMoedaDigitando("R$ 1.234,5"))
}

func TestFormatarMoedaAoSair(t *testing.T) {
	assert.Equal(t, "R$ 123,00", FormatarMoedaAoSair("R$ 123"))
	assert.Equal(t, "R$ 123,5", FormatarMoedaAoSair("R$ 123,5"))
	assert.Equal(t, "", FormatarMoedaAoSair(""))
}

func TestNormalizarEncerrante(t *testing.T) {
	assert.Equal(t, "1.718.359,423", NormalizarEncerrante("1718359423"))
	assert.Equal(t, "1.718.359,423", NormalizarEncerrante("1.718.359.423"))
	assert.Equal(t, "0,423", NormalizarEncerrante("423"))
	assert.Equal(t, "0,042", NormalizarEncerrante("42"))
	assert.Equal(t, "", NormalizarEncerrante(""))
	assert.Equal(t, "1,000", NormalizarEncerrante("1000"))

	// Round-trip com o parser: normalizar não muda o valor
	assert.InDelta(t, 1718359.423, AnalisarValor(NormalizarEncerrante("1718359423")), 1e-9)
}
