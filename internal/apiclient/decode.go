package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/princeprakhar/partnerhub/internal/types"
)

// Decode reads the {success, message, data} envelope into a typed value. A
// body without "success" or "data" keys (a bare list or object) is taken as
// the data payload itself.
func Decode[T any](resp *Response) (*types.Envelope[T], error) {
	data, env, err := splitEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}

	out := &types.Envelope[T]{Success: env.success, Message: env.message}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out.Data); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return out, nil
}

// DecodeList is Decode for list payloads. Anything other than a JSON array
// yields an empty, non-nil slice.
func DecodeList[T any](resp *Response) (*types.Envelope[[]T], error) {
	data, env, err := splitEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}

	out := &types.Envelope[[]T]{Success: env.success, Message: env.message, Data: []T{}}
	if len(data) == 0 || data[0] != '[' {
		return out, nil
	}
	if err := json.Unmarshal(data, &out.Data); err != nil {
		return nil, fmt.Errorf("failed to decode response list: %w", err)
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return out, nil
}

// Message returns the top-level message of a successful response.
func (r *Response) Message() string {
	_, env, err := splitEnvelope(r.Body)
	if err != nil {
		return ""
	}
	return env.message
}

type envelopeMeta struct {
	success bool
	message string
}

func splitEnvelope(body []byte) ([]byte, envelopeMeta, error) {
	body = bytes.TrimSpace(body)
	meta := envelopeMeta{success: true}
	if len(body) == 0 {
		return nil, meta, nil
	}
	if body[0] != '{' {
		return body, meta, nil
	}

	var (
		data    []byte
		wrapped bool
		success = true
		message string
	)
	err := jsonparser.ObjectEach(body, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		switch string(key) {
		case "data":
			wrapped = true
			data = rawValue(value, dataType)
		case "success":
			wrapped = true
			if dataType == jsonparser.Boolean {
				success, _ = jsonparser.ParseBoolean(value)
			}
		case "message":
			if dataType == jsonparser.String {
				message, _ = jsonparser.ParseString(value)
			}
		}
		return nil
	})
	if err != nil {
		return nil, meta, fmt.Errorf("failed to parse response body: %w", err)
	}
	if !wrapped {
		return body, meta, nil
	}
	return data, envelopeMeta{success: success, message: message}, nil
}

// rawValue turns a jsonparser value back into standalone JSON. Strings come
// back unquoted (still escaped), nulls become nil.
func rawValue(value []byte, dataType jsonparser.ValueType) []byte {
	switch dataType {
	case jsonparser.Null, jsonparser.NotExist:
		return nil
	case jsonparser.String:
		quoted := make([]byte, 0, len(value)+2)
		quoted = append(quoted, '"')
		quoted = append(quoted, value...)
		return append(quoted, '"')
	default:
		return value
	}
}
