package http

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/soat-kiosk/lanchonete/internal/domain"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Msg    string `json:"msg"`
	Status int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Msg: msg, Status: code})
}

// writeDomainError translates the error taxonomy into HTTP responses. Store
// details never reach the body; anything unclassified is a generic 500.
func writeDomainError(w http.ResponseWriter, logger *log.Entry, err error) {
	var derr *domain.DomainError
	if !errors.As(err, &derr) {
		logger.WithError(err).Error("unhandled error on request")
		writeError(w, http.StatusInternalServerError, "Erro inesperado. Tente novamente mais tarde")
		return
	}

	switch derr.Kind {
	case domain.KindNotFound:
		writeError(w, http.StatusNotFound, "não encontrado")
	case domain.KindAlreadyExists:
		writeError(w, http.StatusConflict, "já existe")
	case domain.KindUnauthorized:
		writeError(w, http.StatusUnauthorized, "Credenciais invalidas")
	case domain.KindEmpty, domain.KindNonPositive:
		writeError(w, http.StatusBadRequest, "Input inválido")
	case domain.KindInvalid:
		msg := derr.Reason
		if msg == "" {
			msg = "Input inválido"
		}
		writeError(w, http.StatusBadRequest, msg)
	default:
		logger.WithError(err).Error("store failure on request")
		writeError(w, http.StatusInternalServerError, "Erro inesperado. Tente novamente mais tarde")
	}
}
