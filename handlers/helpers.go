package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/logger"
	"github.com/nevrodda11/torny-aws-api/services"
)

type jsonResponse map[string]interface{}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return readJSONLimit(w, r, dst, constants.MaxJSONBodyBytes)
}

// readUploadJSON is readJSON for bodies carrying base64 media.
func readUploadJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return readJSONLimit(w, r, dst, constants.MaxUploadBodyBytes)
}

func readJSONLimit(w http.ResponseWriter, r *http.Request, dst interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// successResponse writes the success envelope. Empty message or nil data are left out.
func successResponse(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	env := jsonResponse{"status": statusSuccess}
	if message != "" {
		env["message"] = message
	}
	if data != nil {
		env["data"] = data
	}
	if err := writeJSON(w, status, env, nil); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message, details string) {
	env := jsonResponse{"status": statusError, "message": message}
	if details != "" {
		env["details"] = details
	}
	if err := writeJSON(w, status, env, nil); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("failed to write error response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, message string, err error) {
	logger.FromContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(message)
	errorResponse(w, r, http.StatusInternalServerError, message, err.Error())
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, "Invalid request body", err.Error())
}

func invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, "Invalid request parameters", err.Error())
}

// mapServiceErrorToHTTP turns a service failure into a response. Anything that is
// not a *services.Error kind becomes a 500 carrying failMsg.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict):
		errorResponse(w, r, http.StatusBadRequest, err.Error(), "")

	case errors.Is(err, services.ErrNotFound):
		errorResponse(w, r, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, services.ErrUnauthorized):
		errorResponse(w, r, http.StatusUnauthorized, err.Error(), "")

	case errors.Is(err, services.ErrForbidden):
		errorResponse(w, r, http.StatusForbidden, err.Error(), "")

	default:
		serverErrorResponse(w, r, failMsg, err)
	}
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid %s value: %d", paramName, id)
	}

	return id, nil
}

func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// queryInt returns fallback when the parameter is absent or not a number.
func queryInt(r *http.Request, key string, fallback int) int {
	v := queryString(r, key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryIntPtr(r *http.Request, key string) (*int, error) {
	v := queryString(r, key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, v)
	}
	return &n, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	v := queryString(r, key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, v)
	}
	return &f, nil
}

// queryList splits a comma separated parameter, dropping blanks.
func queryList(r *http.Request, key string) []string {
	var out []string
	for _, part := range strings.Split(queryString(r, key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
