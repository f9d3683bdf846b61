package calculo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcularLitrosVendaNormal(t *testing.T) {
	r := CalcularLitros(Leitura{Inicial: "1.000,500", Fechamento: "1.500,750"})
	assert.InDelta(t, 500.25, r.Valor, 1e-9)
	assert.Equal(t, "500,250", r.Exibicao)
	assert.True(t, r.Valida())
}

func TestCalcularLitrosConvencaoEncerrante(t *testing.T) {
	// Leituras cruas da bomba, sem separador
	r := CalcularLitros(Leitura{Inicial: "1718359423", Fechamento: "1718860423"})
	assert.InDelta(t, 501.0, r.Valor, 1e-6)
	assert.Equal(t, "501,000", r.Exibicao)
}

func TestCalcularLitrosSentinela(t *testing.T) {
	// fechamento ≤ inicial → sem venda, nunca litros negativos
	casos := []Leitura{
		{Inicial: "1.500,000", Fechamento: "1.000,000"},
		{Inicial: "1.500,000", Fechamento: "1.500,000"},
		{Inicial: "", Fechamento: ""},
		{Inicial: "0,000", Fechamento: "0,000"},
	}
	for _, l := range casos {
		r := CalcularLitros(l)
		assert.Zero(t, r.Valor, "leitura %+v", l)
		assert.Equal(t, SemVenda, r.Exibicao, "leitura %+v", l)
		assert.False(t, r.Valida())
	}
}

func TestCalcularLitrosBicoZeradoNoInicioDoDia(t *testing.T) {
	// Bico resetado para 0 na abertura e sem venda: 0 → 0 tem que resolver
	// para o sentinela, não para uma venda zerada "válida"
	r := CalcularLitros(Leitura{Inicial: "0", Fechamento: "0"})
	assert.Equal(t, SemVenda, r.Exibicao)
	assert.Zero(t, r.Valor)
}

func TestCalcularVenda(t *testing.T) {
	r := CalcularVenda(100, 5.5)
	assert.InDelta(t, 550.0, r.Valor, 1e-9)
	assert.Equal(t, "R$ 550,00", r.Exibicao)
}

func TestCalcularVendaPropagaSentinela(t *testing.T) {
	// Litros sentinela (valor 0) ⇒ venda sentinela
	litros := CalcularLitros(Leitura{Inicial: "1.500,000", Fechamento: "1.000,000"})
	venda := CalcularVenda(litros.Valor, 5.5)
	assert.Zero(t, venda.Valor)
	assert.Equal(t, SemVenda, venda.Exibicao)
}

func TestValidarLeitura(t *testing.T) {
	assert.True(t, ValidarLeitura(Leitura{Inicial: "1.000", Fechamento: "1.500"}))
	assert.False(t, ValidarLeitura(Leitura{Inicial: "1.500", Fechamento: "1.000"}))
	assert.False(t, ValidarLeitura(Leitura{Inicial: "1.000", Fechamento: "1.000"}))
}
