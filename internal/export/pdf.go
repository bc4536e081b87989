package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"congeadmin/internal/backend"
)

// HistoriquePDF writes a one-page leave balance statement for a single
// history record.
func HistoriquePDF(w io.Writer, record backend.HistoriqueConge) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, translator(fmt.Sprintf("Relevé de congés %d", record.Annee)))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, translator(fmt.Sprintf("Agent : %s (%s)", record.EmployeNom, record.Matricule)))
	pdf.Ln(8)
	pdf.Cell(0, 8, translator(fmt.Sprintf("Jours attribués : %.1f", record.JoursAttribues)))
	pdf.Ln(7)
	pdf.Cell(0, 8, translator(fmt.Sprintf("Jours consommés : %.1f", record.JoursConsommes)))
	pdf.Ln(7)
	pdf.Cell(0, 8, translator(fmt.Sprintf("Jours restants : %.1f", record.JoursRestants)))
	pdf.Ln(10)

	eligible := "Non"
	if record.EligibleICA {
		eligible = "Oui"
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, translator("Éligible ICA : "+eligible))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Édité le %s, document non contractuel", time.Now().Format("02/01/2006"))))

	return pdf.Output(w)
}
