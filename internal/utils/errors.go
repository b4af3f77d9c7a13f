package utils

import (
	"errors"
	"strconv"

	"github.com/buger/jsonparser"
)

// DefaultErrorMessage is shown when a failure carries nothing displayable.
const DefaultErrorMessage = "오류가 발생했습니다."

// responseBodyError is implemented by request errors that carry the raw
// response body (apiclient.Error).
type responseBodyError interface {
	ResponseBody() []byte
}

// ExtractFirstError turns a failed request into exactly one display string.
//
// Order: the first message of the first field in the body's "data" field-error
// map, then the top-level "message", then defaultMsg (or DefaultErrorMessage
// when none is given). A first field whose value is not a list falls through to
// "message".
func ExtractFirstError(err error, defaultMsg ...string) string {
	fallback := DefaultErrorMessage
	if len(defaultMsg) > 0 {
		fallback = defaultMsg[0]
	}

	var rb responseBodyError
	if err == nil || !errors.As(err, &rb) {
		return fallback
	}
	body := rb.ResponseBody()

	if msg, ok := firstFieldError(body); ok {
		return msg
	}
	if msg, err := jsonparser.GetString(body, "message"); err == nil && msg != "" {
		return msg
	}
	return fallback
}

func firstFieldError(body []byte) (string, bool) {
	data, dataType, _, err := jsonparser.Get(body, "data")
	if err != nil {
		return "", false
	}

	var (
		list     []byte
		listType jsonparser.ValueType
		found    bool
	)
	switch dataType {
	case jsonparser.Object:
		list, listType, found = firstObjectEntry(data)
	case jsonparser.Array:
		// Iterating an array's keys starts at "0".
		_, _ = jsonparser.ArrayEach(data, func(value []byte, t jsonparser.ValueType, _ int, _ error) {
			if !found {
				list, listType, found = value, t, true
			}
		})
	default:
		return "", false
	}
	if !found || listType != jsonparser.Array {
		return "", false
	}

	var (
		msg  string
		ok   bool
		seen bool
	)
	_, _ = jsonparser.ArrayEach(list, func(value []byte, t jsonparser.ValueType, _ int, _ error) {
		if seen {
			return
		}
		seen = true
		if t == jsonparser.String {
			if s, err := jsonparser.ParseString(value); err == nil {
				msg, ok = s, true
			}
		}
	})
	return msg, ok
}

// firstObjectEntry returns the value of the first key in JavaScript property
// order: array-index keys ascending, then the remaining keys as written. An
// empty first key counts as absent.
func firstObjectEntry(obj []byte) ([]byte, jsonparser.ValueType, bool) {
	var (
		indexValue, firstValue []byte
		indexType, firstType   jsonparser.ValueType
		bestIndex              uint64
		haveIndex, haveFirst   bool
		firstKey               string
	)
	err := jsonparser.ObjectEach(obj, func(key, value []byte, t jsonparser.ValueType, _ int) error {
		k := string(key)
		if idx, ok := arrayIndex(k); ok {
			if !haveIndex || idx < bestIndex {
				bestIndex, indexValue, indexType, haveIndex = idx, value, t, true
			}
			return nil
		}
		if !haveFirst {
			firstKey, firstValue, firstType, haveFirst = k, value, t, true
		}
		return nil
	})
	if err != nil {
		return nil, jsonparser.NotExist, false
	}
	if haveIndex {
		return indexValue, indexType, true
	}
	if !haveFirst || firstKey == "" {
		return nil, jsonparser.NotExist, false
	}
	return firstValue, firstType, true
}

// arrayIndex reports whether k is a canonical array index (0 .. 2^32-2).
func arrayIndex(k string) (uint64, bool) {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return 0, false
	}
	for _, r := range k {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(k, 10, 64)
	if err != nil || n >= 1<<32-1 {
		return 0, false
	}
	return n, true
}
