package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable wraps transport-level failures (DNS, refused connection,
// timeouts) where no HTTP status was received.
var ErrUnreachable = errors.New("serveur injoignable")

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("erreur API (statut %d)", e.Status)
	}
	return fmt.Sprintf("erreur API (statut %d): %s", e.Status, e.Message)
}

func apiErrorFrom(status int, raw []byte) error {
	var env Envelope
	message := ""
	if err := json.Unmarshal(raw, &env); err == nil {
		message = env.Message
	}
	return &APIError{Status: status, Message: message}
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports a 401, which must clear the session and force the
// user back to the login page.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}

func IsValidation(err error) bool {
	return statusOf(err) == http.StatusUnprocessableEntity
}

func retryable(err error) bool {
	if errors.Is(err, ErrUnreachable) {
		return true
	}
	return statusOf(err) >= 500
}

// Notice maps an error to the fixed user-facing notification shown in the
// console. Every backend failure lands on one of these strings.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnreachable) {
		return "Serveur injoignable, vérifiez votre connexion."
	}
	switch statusOf(err) {
	case http.StatusUnauthorized:
		return "Session expirée, veuillez vous reconnecter."
	case http.StatusForbidden:
		return "Accès refusé : vous n'avez pas les droits nécessaires."
	case http.StatusNotFound:
		return "Ressource introuvable."
	case http.StatusConflict:
		return "Conflit : la ressource a été modifiée entre-temps."
	case http.StatusUnprocessableEntity:
		return "Données invalides, vérifiez le formulaire."
	case http.StatusInternalServerError:
		return "Erreur interne du serveur, réessayez plus tard."
	default:
		return "Une erreur inattendue s'est produite."
	}
}
