package validators

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/angelmondragon/keepers-bakery/pkg/checkout"
	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes a single JSON object into dest and runs the shared
// struct validation rules against it.
func DecodeJSONBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return pkgerrors.New(pkgerrors.CodeValidation, "request body is required")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	if err := checkout.Validator().Struct(dest); err != nil {
		return checkout.FormatValidationErrors(err)
	}
	return nil
}
