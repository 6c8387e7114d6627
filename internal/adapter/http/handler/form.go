package handler

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/domain"
	"github.com/Abdurahmanit/GroupProject/marketplace-service/internal/marketplace/usecase"
)

const maxUploadSize = 10 << 20

var (
	errBadBody      = domain.InvalidInput("Invalid request body")
	errFileTooLarge = domain.InvalidInput("File too large")
)

// form holds the text fields of a request body and at most one uploaded file.
// A key is present in fields only if the client sent it.
type form struct {
	fields map[string]string
	file   *usecase.Upload
}

func (f form) get(key string) (string, bool) {
	v, ok := f.fields[key]
	return v, ok
}

func (f form) optional(key string) *string {
	if v, ok := f.fields[key]; ok {
		return &v
	}
	return nil
}

// price parses the "price" field. Absent returns nil.
func (f form) price() (*float64, error) {
	raw, ok := f.fields["price"]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parseFinite(raw)
	if err != nil {
		return nil, domain.InvalidInput("Price must be a number")
	}
	return &v, nil
}

// parseFinite is strconv.ParseFloat without NaN and infinities.
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// readForm accepts multipart/form-data (with an optional file under fileField)
// or a JSON object. The multipart spool is removed before returning.
func readForm(w http.ResponseWriter, r *http.Request, fileField string) (form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return readMultipart(r, fileField)
	}
	return readJSONForm(r)
}

func readMultipart(r *http.Request, fileField string) (form, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return form{}, errFileTooLarge
		}
		return form{}, errBadBody
	}
	defer r.MultipartForm.RemoveAll()

	f := form{fields: make(map[string]string)}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			f.fields[key] = values[0]
		}
	}

	file, header, err := r.FormFile(fileField)
	if errors.Is(err, http.ErrMissingFile) {
		return f, nil
	}
	if err != nil {
		return form{}, errBadBody
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form{}, errBadBody
	}
	f.file = &usecase.Upload{FileName: header.Filename, Data: data}
	return f, nil
}

// readJSONForm flattens a JSON object into string fields. Numbers keep their
// literal text so "price": 10 and "price": "10" parse the same.
func readJSONForm(r *http.Request) (form, error) {
	f := form{fields: make(map[string]string)}
	if r.ContentLength == 0 {
		return f, nil
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return form{}, errFileTooLarge
		}
		return form{}, errBadBody
	}
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			f.fields[key] = s
			continue
		}
		text := strings.TrimSpace(string(value))
		if text == "null" {
			continue
		}
		f.fields[key] = text
	}
	return f, nil
}

// decodeJSON reads a small JSON body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst); err != nil {
		return errBadBody
	}
	return nil
}
