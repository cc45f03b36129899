package payroll

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// renderPayslipPDF lays out the stored payslip snapshot as a minimal
// single-page PDF. The document is built by hand: one page, one Helvetica
// font, one text stream. Enough for download and print, no external
// renderer needed.
func renderPayslipPDF(run *PayrollRun, slip *Payslip) ([]byte, error) {
	lines := []string{
		"PAYSLIP " + run.RunNumber,
		"Period: " + run.Period.Format("January 2006"),
		"Employee: " + slip.EmployeeName,
		"Payment status: " + slip.PaymentStatus,
		"",
		"EARNINGS",
	}
	lines = appendLineItems(lines, slip.EarningsJSON)
	lines = append(lines, "", "DEDUCTIONS")
	lines = appendLineItems(lines, slip.DeductionsJSON)
	lines = append(lines,
		"",
		fmt.Sprintf("Gross total: %s", slip.GrossTotal.StringFixed(2)),
		fmt.Sprintf("Net total:   %s", slip.NetTotal.StringFixed(2)),
		"",
		"Generated at "+slip.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
	)
	return buildSimplePDF(lines)
}

func appendLineItems(lines []string, raw []byte) []string {
	var items []BreakdownLine
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return append(lines, "  (unreadable)")
		}
	}
	if len(items) == 0 {
		return append(lines, "  (none)")
	}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("  %-32s %12s", item.Label, item.Amount.StringFixed(2)))
	}
	return lines
}

func buildSimplePDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
