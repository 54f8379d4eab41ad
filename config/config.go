package config

// Provider 上游模型服务商
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultModel 默认模型，pro 模型的编码逻辑更可靠
const DefaultModel = "gemini-3-pro-preview"

// GeminiBaseURL Gemini REST API 根地址
const GeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiAPIVersion generateContent 所在的 API 版本
const GeminiAPIVersion = "v1beta"

// OpenAIBaseURL OpenAI 兼容接口的默认地址
const OpenAIBaseURL = "https://api.openai.com/v1"

// ModelMap 已知模型到服务商的映射
// 未列出的模型仍可使用，只在启动时给出提示
var ModelMap = map[string]string{
	"gemini-3-pro-preview": ProviderGemini,
	"gemini-2.5-pro":       ProviderGemini,
	"gemini-2.5-flash":     ProviderGemini,
	"gpt-4o":               ProviderOpenAI,
	"gpt-4o-mini":          ProviderOpenAI,
}

// MaxPromptLength 单次提示词的默认最大长度（字符数）
const MaxPromptLength = 8000

// IsKnownModel 判断模型是否属于指定服务商
func IsKnownModel(provider, model string) bool {
	p, ok := ModelMap[model]
	return ok && p == provider
}
