package utils

import (
	"bitecare-service/internal/pkg/exceptions"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// ParseJSONBody decodes the request body into dst. An empty body leaves dst
// untouched.
func ParseJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}
