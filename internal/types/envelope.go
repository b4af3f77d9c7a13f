package types

// Envelope is the common response wrapper: {success, message, data}.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// FieldErrors is the validation failure variant of data: field name to a list
// of messages. Map iteration is unordered, so code that needs "the first field"
// must read the raw body instead.
type FieldErrors map[string][]string

// Empty is used where the data payload is absent or ignored.
type Empty struct{}
