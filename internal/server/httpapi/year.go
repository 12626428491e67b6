package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var errInvalidYear = errors.New("published_year must be an integer")

// publishedYear decodes the published_year field of a book body. Form-based
// clients post the raw field value, so a numeric string is accepted next to
// a JSON number; "" and null mean no year.
type publishedYear struct {
	value *int
}

func (y *publishedYear) UnmarshalJSON(b []byte) error {
	y.value = nil

	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return errInvalidYear
	}
	y.value = &n
	return nil
}
