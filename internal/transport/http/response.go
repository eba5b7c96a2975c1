package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	svcerrors "github.com/Raisondetr3/tasklist-service/internal/errors"
	"github.com/Raisondetr3/tasklist-service/pkg/dto"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
)

const maxBodyBytes = 1 << 20

type validator interface {
	Valid() bool
}

// decodeBody reads exactly one JSON object into dst. Unknown fields,
// trailing data and missing required fields all fail as InvalidBody.
func decodeBody(w http.ResponseWriter, r *http.Request, dst validator) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return svcerrors.InvalidBody()
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return svcerrors.InvalidBody()
	}
	if !dst.Valid() {
		return svcerrors.InvalidBody()
	}
	return nil
}

// rawID turns one task_ids element into the text the id parser expects:
// JSON strings are unquoted, anything else is used verbatim.
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.LogError(r.Context(), err, "encode_response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := svcerrors.FromError(err)

	message := serviceErr.Message
	if serviceErr.Kind == svcerrors.KindInternal {
		// детали внутренних ошибок остаются в логах
		message = svcerrors.ErrInternalError.Message
	}

	writeJSON(w, r, serviceErr.HTTPStatus(), dto.NewErrAt(message, serviceErr.Time))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, dto.NewErr("Not found"))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusMethodNotAllowed, dto.NewErr("Method not allowed"))
}
