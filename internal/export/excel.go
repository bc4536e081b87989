// Package export renders backend data into downloadable Excel and PDF
// documents. Figures come straight from backend reads; nothing is
// recomputed here.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"congeadmin/internal/backend"
)

const sheetName = "Sheet1"

// EmployeesExcel writes the employee list as an .xlsx workbook.
func EmployeesExcel(w io.Writer, employees []backend.Employee) error {
	file := excelize.NewFile()
	defer file.Close()

	headers := []string{"Matricule", "Nom", "Prénom", "Fonction", "Service", "Sous-direction", "Email", "Date de recrutement"}
	if err := writeHeader(file, headers); err != nil {
		return err
	}

	for i, employee := range employees {
		row := i + 2
		values := []any{
			employee.Matricule,
			employee.Nom,
			employee.Prenom,
			employee.Fonction,
			employee.ServiceNom,
			employee.SousDirectionNom,
			employee.Email,
			employee.DateRecrutement,
		}
		if err := writeRow(file, row, values); err != nil {
			return err
		}
	}

	return file.Write(w)
}

// SuiviICAExcel writes the annual eligibility tracker as an .xlsx workbook.
func SuiviICAExcel(w io.Writer, rows []backend.SuiviICA) error {
	file := excelize.NewFile()
	defer file.Close()

	headers := []string{"Matricule", "Agent", "Service", "Année", "Jours attribués", "Jours consommés", "Jours restants", "Éligible ICA"}
	if err := writeHeader(file, headers); err != nil {
		return err
	}

	for i, row := range rows {
		eligible := "Non"
		if row.Eligible {
			eligible = "Oui"
		}
		values := []any{
			row.Matricule,
			row.EmployeNom,
			row.ServiceNom,
			row.Annee,
			row.JoursAttribues,
			row.JoursConsommes,
			row.JoursRestants,
			eligible,
		}
		if err := writeRow(file, i+2, values); err != nil {
			return err
		}
	}

	return file.Write(w)
}

func writeHeader(file *excelize.File, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(file *excelize.File, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}
	}
	return nil
}
