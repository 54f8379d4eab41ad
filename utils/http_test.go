package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadHTTPResponse_Success(t *testing.T) {
	result, err := ReadHTTPResponse(strings.NewReader(`{"candidates":[]}`))

	assert.NoError(t, err)
	assert.Equal(t, `{"candidates":[]}`, string(result))
}

func TestReadHTTPResponse_EmptyBody(t *testing.T) {
	result, err := ReadHTTPResponse(strings.NewReader(""))

	assert.NoError(t, err)
	assert.Equal(t, []byte{}, result)
}

func TestReadHTTPResponse_UnicodeContent(t *testing.T) {
	unicodeData := "-- 你好世界 🌍\nprint(\"hi\")"

	result, err := ReadHTTPResponse(strings.NewReader(unicodeData))

	assert.NoError(t, err)
	assert.Equal(t, unicodeData, string(result))
}

func TestReadLimited_ExceedsLimit(t *testing.T) {
	result, err := ReadLimited(strings.NewReader(strings.Repeat("A", 20)), 10)

	assert.Error(t, err)
	assert.Len(t, result, 10)
}

func TestReadLimited_ExactlyLimit(t *testing.T) {
	result, err := ReadLimited(strings.NewReader(strings.Repeat("A", 10)), 10)

	assert.NoError(t, err)
	assert.Len(t, result, 10)
}

// errorReader 第一次返回部分数据，之后返回错误
type errorReader struct {
	readCount int
}

func (e *errorReader) Read(p []byte) (int, error) {
	e.readCount++
	if e.readCount == 1 {
		return copy(p, "partial data"), nil
	}
	return 0, errors.New("read error")
}

func TestReadHTTPResponse_ReadError(t *testing.T) {
	result, err := ReadHTTPResponse(&errorReader{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read error")
	assert.Equal(t, []byte("partial data"), result)
}
