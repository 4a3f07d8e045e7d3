package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/httpx"
	"github.com/projetointerclasse/interclasse/pkg/imagex"
	"github.com/projetointerclasse/interclasse/pkg/interclassesdk"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

// writeServiceError maps service and store errors onto the error envelope.
// Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fe service.FieldErrors
	switch {
	case errors.As(err, &fe):
		httpx.WriteFieldErrors(w, fe)

	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrInvalidEmail):
		httpx.WriteError(w, http.StatusBadRequest, interclassesdk.ErrorCodeInvalidRequest, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, interclassesdk.ErrorCodeInvalidCredentials, "Email ou senha incorretos.")

	case errors.Is(err, service.ErrAlreadyLoggedIn):
		httpx.WriteError(w, http.StatusConflict, interclassesdk.ErrorCodeAlreadyLoggedIn, "Você já está logado.")

	case errors.Is(err, store.ErrDuplicateEmail):
		httpx.WriteJSON(w, http.StatusConflict, httpx.ErrorBody{
			Error:            interclassesdk.ErrorCodeDuplicateEmail,
			ErrorDescription: "Email já cadastrado.",
			Fields:           map[string]string{"email": "Email já cadastrado"},
		})

	case errors.Is(err, service.ErrStepOutOfOrder):
		httpx.WriteError(w, http.StatusConflict, interclassesdk.ErrorCodeStepOutOfOrder, "Etapa de cadastro fora de ordem.")

	case errors.Is(err, imagex.ErrTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, interclassesdk.ErrorCodePhotoTooLarge, "A imagem deve ter no máximo 2MB.")

	case errors.Is(err, imagex.ErrUnsupportedType):
		httpx.WriteError(w, http.StatusUnsupportedMediaType, interclassesdk.ErrorCodeUnsupportedPhoto, "Formato não suportado. Use JPG, PNG ou GIF.")

	case errors.Is(err, imagex.ErrDecode):
		httpx.WriteError(w, http.StatusUnprocessableEntity, interclassesdk.ErrorCodeUnreadablePhoto, "Não foi possível ler a imagem.")

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slogx.FromContext(r.Context()).Info("request abandoned", slog.Any("err", err))
		httpx.WriteError(w, http.StatusServiceUnavailable, interclassesdk.ErrorCodeServerError, "Request cancelled.")

	default:
		writeServerError(w, r, "request failed", err)
	}
}

func writeServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, slog.Any("err", err))
	httpx.WriteError(w, http.StatusInternalServerError, interclassesdk.ErrorCodeServerError, "Erro interno. Tente novamente.")
}
