package utils

import (
	"bytes"
	"fmt"
	"io"
)

// MaxResponseBodySize 上游响应体上限（8MB），超出视为异常响应
const MaxResponseBodySize = 8 * 1024 * 1024

// ReadHTTPResponse 读取完整响应体，空body返回空切片而不是nil
func ReadHTTPResponse(body io.Reader) ([]byte, error) {
	return ReadLimited(body, MaxResponseBodySize)
}

// ReadLimited 最多读取 limit 字节，超过时返回已读内容和错误
func ReadLimited(body io.Reader, limit int64) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 1024))

	n, err := io.Copy(buffer, io.LimitReader(body, limit+1))
	result := buffer.Bytes()
	if err != nil {
		return result, err
	}
	if n > limit {
		return result[:limit], fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return result, nil
}
