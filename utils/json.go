package utils

import "github.com/bytedance/sonic"

var (
	// FastestConfig 最快的JSON配置，用于请求体序列化
	FastestConfig = sonic.ConfigFastest

	// SafeConfig 标准兼容配置，用于解析上游响应
	SafeConfig = sonic.ConfigStd
)

// FastMarshal 高性能JSON序列化
func FastMarshal(v any) ([]byte, error) {
	return FastestConfig.Marshal(v)
}

// SafeUnmarshal 安全JSON反序列化
func SafeUnmarshal(data []byte, v any) error {
	return SafeConfig.Unmarshal(data, v)
}
