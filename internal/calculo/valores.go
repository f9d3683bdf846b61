// Package calculo implementa o motor de conciliação do fechamento diário:
// parsing e formatação de valores no padrão brasileiro, cálculo de litros e
// vendas por bico, consolidação por combustível/frentista/forma de pagamento
// e os cálculos de custo médio e margem do registro de compras.
//
// Todas as funções são puras e totais: nunca retornam erro nem entram em
// pânico — entrada inválida degrada para 0 (números) ou "-" (exibição).
package calculo

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AnalisarValor converte uma string no padrão brasileiro para float64.
//
// Duas convenções convivem no mesmo campo:
//   - Com vírgula: formato BR tradicional ("1.234,56" → 1234.56). A vírgula
//     é o separador decimal e os pontos são agrupadores de milhar.
//   - Sem vírgula: convenção do encerrante de bomba — a leitura é uma fileira
//     de dígitos onde os ÚLTIMOS 3 são sempre a parte decimal, com ou sem
//     pontos no meio ("1.718.359.423" e "1718359423" → 1718359.423).
//
// A vírgula, quando presente, tem precedência. Entrada vazia ou sem nenhum
// dígito aproveitável resulta em 0, nunca em erro.
func AnalisarValor(valor string) float64 {
	limpo := strings.TrimSpace(valor)
	limpo = strings.TrimSpace(strings.TrimPrefix(limpo, "R$"))
	if limpo == "" {
		return 0
	}

	if strings.Contains(limpo, ",") {
		limpo = strings.ReplaceAll(limpo, ".", "")
		limpo = strings.Replace(limpo, ",", ".", 1)
		return parseFloatPrefixo(limpo)
	}

	// Sem vírgula: regra do encerrante, com ou sem pontos de milhar.
	return decodificarEncerrante(strings.ReplaceAll(limpo, ".", ""))
}

// decodificarEncerrante aplica a regra "últimos 3 dígitos são decimais" a uma
// fileira de dígitos já sem separadores.
func decodificarEncerrante(digitos string) float64 {
	if digitos == "" {
		return 0
	}
	if len(digitos) > 3 {
		corte := len(digitos) - 3
		return parseFloatPrefixo(digitos[:corte] + "." + digitos[corte:])
	}
	// 3 dígitos ou menos: valor submétrico (0,xxx)
	return parseFloatPrefixo("0." + strings.Repeat("0", 3-len(digitos)) + digitos)
}

// parseFloatPrefixo reproduz a tolerância do parseFloat de planilhas/JS:
// interpreta o maior prefixo numérico válido e descarta o resto. NaN e
// infinito colapsam para 0.
func parseFloatPrefixo(s string) float64 {
	fim := 0
	vistoDigito := false
	vistoPonto := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			vistoDigito = true
			fim = i + 1
		case r == '.' && !vistoPonto:
			vistoPonto = true
			fim = i + 1
		case (r == '-' || r == '+') && i == 0:
			fim = i + 1
		default:
			goto pronto
		}
	}
pronto:
	if !vistoDigito {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:fim], "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ValorDe aceita valores que já chegam numéricos do banco (colunas decimal)
// sem reaplicar as heurísticas de string — um número é ele mesmo.
func ValorDe(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return x
	case float32:
		return ValorDe(float64(x))
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case decimal.Decimal:
		f, _ := x.Float64()
		return f
	case *decimal.Decimal:
		if x == nil {
			return 0
		}
		f, _ := x.Float64()
		return f
	case string:
		return AnalisarValor(x)
	}
	return 0
}

// FormatarBR formata um número no padrão brasileiro com casas decimais fixas.
// FormatarBR(1234.567, 3) → "1.234,567"; FormatarBR(0, 3) → "0,000".
func FormatarBR(n float64, decimais int) string {
	if decimais < 0 {
		decimais = 0
	}
	if n == 0 {
		if decimais == 0 {
			return "0"
		}
		return "0," + strings.Repeat("0", decimais)
	}

	fixo := strconv.FormatFloat(n, 'f', decimais, 64)
	negativo := strings.HasPrefix(fixo, "-")
	fixo = strings.TrimPrefix(fixo, "-")

	partes := strings.SplitN(fixo, ".", 2)
	resultado := agruparMilhares(partes[0])
	if decimais > 0 {
		decimal := strings.Repeat("0", decimais)
		if len(partes) > 1 {
			decimal = partes[1]
		}
		resultado += "," + decimal
	}
	if negativo {
		resultado = "-" + resultado
	}
	return resultado
}

// ParaReais formata um valor como moeda BRL com 2 casas: "R$ 1.234,56".
// Valores negativos saem como "-R$ 50,00" (diferenças de caixa).
func ParaReais(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return ""
	}
	negativo := math.Signbit(n) && n != 0
	fixo := strconv.FormatFloat(math.Abs(n), 'f', 2, 64)
	partes := strings.SplitN(fixo, ".", 2)
	resultado := "R$ " + agruparMilhares(partes[0]) + "," + partes[1]
	if negativo {
		resultado = "-" + resultado
	}
	return resultado
}

// FormatarEncerranteDigitando é a máscara aplicada a cada tecla nos campos de
// leitura de encerrante. Mantém literalmente o que o usuário digitou depois da
// vírgula (sem completar zeros), remove zeros à esquerda da parte inteira e
// reinsere os pontos de milhar. Sem vírgula, formata apenas a parte inteira.
func FormatarEncerranteDigitando(valor string) string {
	limpo := filtrar(valor, true)
	if limpo == "" {
		return ""
	}

	if virgula := strings.IndexByte(limpo, ','); virgula >= 0 {
		inteiro := limpo[:virgula]
		decimal := strings.ReplaceAll(limpo[virgula+1:], ",", "")
		inteiro = tirarZerosEsquerda(inteiro)
		return agruparMilhares(inteiro) + "," + decimal
	}

	return agruparMilhares(tirarZerosEsquerda(limpo))
}

// FormatarMoedaDigitando é a máscara de digitação dos campos monetários.
// Não força centavos: "1234" → "R$ 1.234"; "1234,5" → "R$ 1.234,5".
// Os centavos são completados apenas ao sair do campo (FormatarMoedaAoSair).
func FormatarMoedaDigitando(valor string) string {
	limpo := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(valor), "R$"))
	limpo = strings.ReplaceAll(limpo, ".", "")
	limpo = filtrar(limpo, true)
	if limpo == "" || limpo == "," {
		return ""
	}

	partes := strings.SplitN(limpo, ",", 2)
	inteiro := filtrar(partes[0], false)
	if inteiro == "" && len(partes) == 1 {
		return ""
	}
	if inteiro == "" {
		inteiro = "0"
	}
	inteiro = agruparMilhares(tirarZerosEsquerda(inteiro))

	if len(partes) > 1 {
		decimal := filtrar(strings.ReplaceAll(partes[1], ",", ""), false)
		return "R$ " + inteiro + "," + decimal
	}
	return "R$ " + inteiro
}

// FormatarMoedaAoSair completa os centavos ausentes quando o foco deixa um
// campo monetário: "R$ 123" → "R$ 123,00". Valores já com vírgula não mudam.
func FormatarMoedaAoSair(valor string) string {
	if valor == "" {
		return ""
	}
	if strings.Contains(valor, ",") {
		return valor
	}
	return valor + ",00"
}

// NormalizarEncerrante renormaliza um campo de encerrante no blur para a forma
// canônica com exatamente 3 casas decimais ("1718359423" → "1.718.359,423").
// É a mesma regra de decodificação do AnalisarValor, devolvida como string.
func NormalizarEncerrante(valor string) string {
	digitos := filtrar(valor, false)
	if digitos == "" {
		return ""
	}
	if len(digitos) <= 3 {
		return "0," + strings.Repeat("0", 3-len(digitos)) + digitos
	}
	corte := len(digitos) - 3
	inteiro := tirarZerosEsquerda(digitos[:corte])
	return agruparMilhares(inteiro) + "," + digitos[corte:]
}

// agruparMilhares insere pontos de milhar em uma fileira de dígitos.
func agruparMilhares(digitos string) string {
	if len(digitos) <= 3 {
		return digitos
	}
	var b strings.Builder
	primeiro := len(digitos) % 3
	if primeiro == 0 {
		primeiro = 3
	}
	b.WriteString(digitos[:primeiro])
	for i := primeiro; i < len(digitos); i += 3 {
		b.WriteByte('.')
		b.WriteString(digitos[i : i+3])
	}
	return b.String()
}

// filtrar mantém apenas dígitos (e a vírgula, quando comVirgula).
func filtrar(s string, comVirgula bool) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (comVirgula && r == ',') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tirarZerosEsquerda remove zeros à esquerda preservando um "0" solitário.
func tirarZerosEsquerda(digitos string) string {
	aparado := strings.TrimLeft(digitos, "0")
	if aparado == "" {
		return "0"
	}
	return aparado
}
