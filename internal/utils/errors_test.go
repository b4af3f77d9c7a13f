package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bodyErr struct{ body string }

func (e *bodyErr) Error() string        { return "request failed" }
func (e *bodyErr) ResponseBody() []byte { return []byte(e.body) }

func TestExtractFirstError(t *testing.T) {
	cases := []struct {
		name string
		body string
		def  []string
		want string
	}{
		{
			name: "first message of the first field",
			body: `{"success":false,"message":"입력값 오류","data":{"username":["이미 사용 중인 아이디입니다.","second"],"email":["bad"]}}`,
			want: "이미 사용 중인 아이디입니다.",
		},
		{
			name: "document order, not alphabetical",
			body: `{"data":{"zeta":["z first"],"alpha":["a second"]},"message":"m"}`,
			want: "z first",
		},
		{
			name: "array-index keys come first",
			body: `{"data":{"name":["by name"],"1":["one"],"0":["zero"]}}`,
			want: "zero",
		},
		{
			name: "message when data missing",
			body: `{"success":false,"message":"가게 정보가 등록되어 있지 않습니다."}`,
			want: "가게 정보가 등록되어 있지 않습니다.",
		},
		{
			name: "message when data is null",
			body: `{"message":"X","data":null}`,
			want: "X",
		},
		{
			name: "first value not a list falls back to message",
			body: `{"message":"fallback message","data":{"detail":"a plain string"}}`,
			want: "fallback message",
		},
		{
			name: "first value not a list and no message uses default",
			body: `{"data":{"detail":"a plain string"}}`,
			def:  []string{"기본"},
			want: "기본",
		},
		{
			name: "later list is not used when first is not a list",
			body: `{"data":{"detail":"str","field":["should not appear"]},"message":"top"}`,
			want: "top",
		},
		{
			name: "empty data map",
			body: `{"data":{},"message":"top"}`,
			want: "top",
		},
		{
			name: "empty list falls through",
			body: `{"data":{"field":[]},"message":"top"}`,
			want: "top",
		},
		{
			name: "data as array of lists",
			body: `{"data":[["nested first"]],"message":"top"}`,
			want: "nested first",
		},
		{
			name: "data as string",
			body: `{"data":"oops","message":"top"}`,
			want: "top",
		},
		{
			name: "empty message uses default",
			body: `{"message":""}`,
			want: DefaultErrorMessage,
		},
		{
			name: "non-JSON body",
			body: `Limit exceeded`,
			def:  []string{"잠시 후 다시 시도해주세요."},
			want: "잠시 후 다시 시도해주세요.",
		},
		{
			name: "neither uses caller default",
			body: `{}`,
			def:  []string{"회원가입 실패"},
			want: "회원가입 실패",
		},
		{
			name: "neither uses built-in default",
			body: `{}`,
			want: "오류가 발생했습니다.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractFirstError(&bodyErr{body: tc.body}, tc.def...)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractFirstErrorWithoutResponse(t *testing.T) {
	assert.Equal(t, DefaultErrorMessage, ExtractFirstError(nil))
	assert.Equal(t, DefaultErrorMessage, ExtractFirstError(errors.New("dial tcp: refused")))
	assert.Equal(t, "x", ExtractFirstError(errors.New("boom"), "x"))
}

func TestExtractFirstErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("failed to load: %w", &bodyErr{body: `{"data":{"post":["존재하지 않는 게시글입니다."]}}`})
	assert.Equal(t, "존재하지 않는 게시글입니다.", ExtractFirstError(err))
}

func TestArrayIndex(t *testing.T) {
	for k, want := range map[string]bool{
		"0": true, "7": true, "4294967294": true,
		"4294967295": false, "01": false, "-1": false, "": false, "a1": false,
	} {
		_, ok := arrayIndex(k)
		assert.Equal(t, want, ok, k)
	}
}
