// Package forms declares the typed form payloads for every modal/dialog of
// the console and validates them before anything is sent to the backend.
// A form with known-invalid data never reaches the network.
package forms

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Login struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type Employee struct {
	Matricule       string `validate:"required,max=20"`
	Nom             string `validate:"required,max=100"`
	Prenom          string `validate:"required,max=100"`
	Email           string `validate:"omitempty,email"`
	Fonction        string `validate:"required,max=100"`
	DateRecrutement string `validate:"required"`
	ServiceID       int64  `validate:"required,gt=0"`
}

type SousDirection struct {
	Code string `validate:"required,max=10"`
	Nom  string `validate:"required,max=150"`
}

type Service struct {
	Nom             string `validate:"required,max=150"`
	SousDirectionID int64  `validate:"required,gt=0"`
}

type Demande struct {
	EmployeID int64  `validate:"required,gt=0"`
	DateDebut string `validate:"required"`
	DateFin   string `validate:"required"`
	Motif     string `validate:"required,max=500"`
}

// Decision carries a workflow transition. A rejection without a remark is
// invalid before it ever leaves the console.
type Decision struct {
	Statut   string `validate:"required,oneof=APPROUVEE REJETEE REPORTEE"`
	Remarque string `validate:"required_if=Statut REJETEE,max=500"`
}

type Historique struct {
	EmployeID      int64   `validate:"required,gt=0"`
	Annee          int     `validate:"required,gte=2000,lte=2100"`
	JoursAttribues float64 `validate:"gte=0,lte=365"`
	JoursConsommes float64 `validate:"gte=0,lte=365"`
}

type Ajustement struct {
	Type     string  `validate:"required,oneof=AJOUT RETRAIT CORRECTION"`
	Jours    float64 `validate:"required"`
	Remarque string  `validate:"required,max=500"`
}

type User struct {
	Username string `validate:"required,min=3,max=50"`
	NomAgent string `validate:"required,max=150"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"omitempty,min=8"`
	Role     string `validate:"required,oneof=ADMIN RH CONSULTATION"`
}

type AuditSearch struct {
	Utilisateur string `validate:"omitempty,max=100"`
	Action      string `validate:"omitempty,max=100"`
	Ressource   string `validate:"omitempty,max=100"`
	DateDebut   string `validate:"omitempty"`
	DateFin     string `validate:"omitempty"`
}

// Check validates a form and returns per-field French messages, keyed by
// struct field name. An empty map means the form may be submitted.
func Check(form any) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	issues := make(map[string]string)
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		issues[""] = "formulaire invalide"
		return issues
	}
	for _, fieldErr := range validationErrs {
		issues[fieldErr.Field()] = message(fieldErr)
	}
	return issues
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "champ obligatoire"
	case "required_if":
		return "champ obligatoire pour ce statut"
	case "email":
		return "adresse e-mail invalide"
	case "oneof":
		return "valeur non autorisée"
	case "min":
		return "valeur trop courte (minimum " + fieldErr.Param() + ")"
	case "max":
		return "valeur trop longue (maximum " + fieldErr.Param() + ")"
	case "gt", "gte":
		return "valeur trop petite"
	case "lt", "lte":
		return "valeur trop grande"
	default:
		return "valeur invalide"
	}
}
