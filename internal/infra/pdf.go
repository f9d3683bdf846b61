package infra

// pdf.go gera o relatório em PDF de um fechamento de turno:
// vendas por combustível, sessões de frentista, recebimentos por
// forma de pagamento e os totais consolidados com a diferença de caixa.

import (
	"bytes"
	"fmt"

	"postogestor/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GerarRelatorioFechamento renders the closing summary as an A4 PDF and
// returns the raw bytes, ready to be attached to an email.
func GerarRelatorioFechamento(resumo *dto.ResumoFechamentoResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Cabeçalho ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Relatório de Fechamento de Turno"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Data: %s    Turno: %s    Status: %s",
		resumo.Data, resumo.Turno, resumo.Status)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	secao := func(titulo string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(titulo), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	// ── Vendas por combustível ───────────────────────────────────────────────
	secao("Vendas por combustível")
	col1 := contentW * 0.40
	col2 := contentW * 0.28
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Combustível", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Litros", "", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 6, "Valor (R$)", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, cmb := range resumo.Combustiveis {
		pdf.CellFormat(col1, 5, tr(cmb.Nome), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, cmb.LitrosExibido, "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5, cmb.ValorExibido, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Sessões de frentista ─────────────────────────────────────────────────
	if len(resumo.Sessoes) > 0 {
		secao("Sessões de frentista")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "Frentista", "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Declarado (R$)", "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, tr("Diferença (R$)"), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, s := range resumo.Sessoes {
			pdf.CellFormat(col1, 5, tr(s.Frentista), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, s.TotalDeclarado.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col3, 5, s.Diferenca.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// ── Recebimentos por forma de pagamento ──────────────────────────────────
	if len(resumo.Pagamentos) > 0 {
		secao("Recebimentos por forma de pagamento")
		colA := contentW * 0.34
		colB := contentW * 0.22
		colC := contentW * 0.22
		colD := contentW * 0.22

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colA, 6, "Forma", "", 0, "L", false, 0, "")
		pdf.CellFormat(colB, 6, "Bruto (R$)", "", 0, "R", false, 0, "")
		pdf.CellFormat(colC, 6, "Taxa (R$)", "", 0, "R", false, 0, "")
		pdf.CellFormat(colD, 6, tr("Líquido (R$)"), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, p := range resumo.Pagamentos {
			pdf.CellFormat(colA, 5, tr(p.Nome), "", 0, "L", false, 0, "")
			pdf.CellFormat(colB, 5, p.Valor.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(colC, 5, p.ValorTaxa.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(colD, 5, p.Liquido.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// ── Totais ───────────────────────────────────────────────────────────────
	secao("Totais consolidados")
	linha := func(rotulo, valor string, negrito bool) {
		estilo := ""
		if negrito {
			estilo = "B"
		}
		pdf.SetFont("Helvetica", estilo, 9)
		pdf.CellFormat(contentW*0.6, 5, tr(rotulo), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 5, valor, "", 1, "R", false, 0, "")
	}

	linha("Total de litros", resumo.TotalLitros.StringFixed(3), false)
	linha("Total de vendas (encerrantes)", "R$ "+resumo.TotalVendas.StringFixed(2), false)
	linha("Total declarado pelos frentistas", "R$ "+resumo.TotalDeclarado.StringFixed(2), false)
	linha("Taxas de pagamento", "R$ "+resumo.TotalTaxas.StringFixed(2), false)
	linha("Líquido dos recebimentos", "R$ "+resumo.LiquidoPagamentos.StringFixed(2), false)
	linha("Diferença de caixa (positivo = sobra)", "R$ "+resumo.DiferencaCaixa.StringFixed(2), true)
	linha("Desvio percentual", resumo.PercentualDesvio.StringFixed(3)+" %", false)
	linha("Classificação", resumo.Classificacao, true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render relatório: %w", err)
	}
	return buf.Bytes(), nil
}
