package calculo

// SemVenda é o sentinela de exibição para um bico sem venda no turno
// (fechamento menor ou igual à leitura inicial, ou bico não aferido).
// A consolidação ignora leituras com esse sentinela em vez de somar zero.
const SemVenda = "-"

// Leitura é o par de encerrantes de um bico em um turno, nas strings cruas
// como foram digitadas ou carregadas ("1.718.359,423", "1718359423", ...).
type Leitura struct {
	Inicial    string `json:"inicial"`
	Fechamento string `json:"fechamento"`
}

// Resultado carrega o valor numérico para os cálculos e a string formatada
// para exibição direta na tela.
type Resultado struct {
	Valor    float64 `json:"valor"`
	Exibicao string  `json:"exibicao"`
}

// Valida informa se o resultado representa uma venda real (não sentinela).
func (r Resultado) Valida() bool { return r.Exibicao != SemVenda }

// CalcularLitros calcula os litros vendidos por um bico a partir das leituras
// do encerrante. Regra da planilha: fechamento ≤ inicial, ou fechamento zero,
// significa "sem venda" e devolve o sentinela "-" — nunca litros negativos e
// nunca um zero indistinguível de venda zerada.
func CalcularLitros(l Leitura) Resultado {
	inicial := AnalisarValor(l.Inicial)
	fechamento := AnalisarValor(l.Fechamento)

	if fechamento <= inicial || fechamento == 0 {
		return Resultado{Valor: 0, Exibicao: SemVenda}
	}

	litros := fechamento - inicial
	return Resultado{Valor: litros, Exibicao: FormatarBR(litros, 3)}
}

// CalcularVenda calcula o valor da venda (litros × preço unitário).
// O sentinela propaga: litros "-" ⇒ venda "-".
func CalcularVenda(litros float64, precoUnitario float64) Resultado {
	if litros <= 0 {
		return Resultado{Valor: 0, Exibicao: SemVenda}
	}
	venda := litros * precoUnitario
	return Resultado{Valor: venda, Exibicao: ParaReais(venda)}
}

// ValidarLeitura informa se houve avanço real do encerrante no turno.
func ValidarLeitura(l Leitura) bool {
	return AnalisarValor(l.Fechamento) > AnalisarValor(l.Inicial)
}
