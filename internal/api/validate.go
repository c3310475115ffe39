package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

type fieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// it has already written the 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return validateStruct(w, r, dst)
}

// validateStruct runs the struct tags on v, writing the 400 on failure.
func validateStruct(w http.ResponseWriter, r *http.Request, v any) bool {
	err := getValidator().Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return false
	}

	fields := make([]fieldError, len(verrs))
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
		msgs[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
	writeJSON(w, r, http.StatusBadRequest, Response{Error: &Error{
		Code:    ErrCodeValidationFailed,
		Message: strings.Join(msgs, "; "),
		Details: map[string]any{"fields": fields},
	}})
	return false
}
