package broker

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexInt decodes an integer sent either as a JSON number or as a numeric
// string. Fractions are truncated.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return fmt.Errorf("integer expected, got null")
	}
	s = strings.Trim(s, `"`)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("integer expected, got %s", b)
	}
	*f = flexInt(math.Trunc(v))
	return nil
}

type batchError struct {
	Desc string          `json:"desc"`
	Code json.RawMessage `json:"code"`
}

func (b batchError) toError() *Error {
	var code flexInt
	if err := json.Unmarshal(b.Code, &code); err == nil {
		return newError(b.Desc, "", int(code))
	}
	// symbolic codes ("NotFound") end up as the error context
	var symbolic string
	_ = json.Unmarshal(b.Code, &symbolic)
	return newError(b.Desc, symbolic, 0)
}

// unpackBatchResponse extracts a single id from an endpoint that answers
// either {"<name>s": [...], "errors": [...]} or {"<name>": ...}.
func unpackBatchResponse(data json.RawMessage, name string) (int64, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return 0, &ConnectionError{Err: fmt.Errorf("decode %s: %w", name, err)}
	}

	if list, ok := fields[name+"s"]; ok {
		if raw, ok := fields["errors"]; ok {
			var errs []batchError
			if err := json.Unmarshal(raw, &errs); err != nil {
				return 0, &ConnectionError{Err: fmt.Errorf("decode errors: %w", err)}
			}
			if len(errs) > 0 {
				return 0, errs[0].toError()
			}
		}

		var ids []flexInt
		if err := json.Unmarshal(list, &ids); err != nil {
			return 0, &ConnectionError{Err: fmt.Errorf("decode %ss: %w", name, err)}
		}
		if len(ids) == 0 {
			return 0, &ConnectionError{Err: fmt.Errorf("empty %ss list", name)}
		}
		return int64(ids[0]), nil
	}

	raw, ok := fields[name]
	if !ok {
		return 0, &ConnectionError{Err: fmt.Errorf("response has no %q", name)}
	}
	var id flexInt
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, &ConnectionError{Err: fmt.Errorf("decode %s: %w", name, err)}
	}
	return int64(id), nil
}
