package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/example/anime-registry/services/animes/internal/domain"
)

const maxBodyBytes = 1 << 20

var errBadID = errors.New("id must be a positive integer")

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// Paging holds the page size bounds applied to GET /animes.
type Paging struct {
	DefaultSize int
	MaxSize     int
}

func (p Paging) parse(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	var req domain.PageRequest
	var err error
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if req.Page, err = strconv.Atoi(v); err != nil {
			return domain.PageRequest{}, fmt.Errorf("%w: page %q is not a number", domain.ErrInvalidPage, v)
		}
	}
	if v := strings.TrimSpace(q.Get("size")); v != "" {
		if req.Size, err = strconv.Atoi(v); err != nil {
			return domain.PageRequest{}, fmt.Errorf("%w: size %q is not a number", domain.ErrInvalidPage, v)
		}
	}
	if req.Sort, err = domain.ParseSort(q["sort"]); err != nil {
		return domain.PageRequest{}, err
	}
	return req.Normalize(p.DefaultSize, p.MaxSize)
}

var validate = newValidator()

// fieldMessages are the client-facing messages per JSON field.
var fieldMessages = map[string]string{
	"name": "The anime name cannot be empty",
	"id":   "The anime id must be a positive number",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors flattens validator output into comma separated field names and
// messages, in declaration order.
func fieldErrors(err error) (fields, messages string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", "", false
	}
	names := make([]string, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
		msg, known := fieldMessages[fe.Field()]
		if !known {
			msg = fmt.Sprintf("failed on the %q constraint", fe.Tag())
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(names, ", "), strings.Join(msgs, ", "), true
}
