package generator

import (
	"regexp"
	"strings"
)

var (
	// 开头围栏："```" + 可选语言标记 + 可选空格 + 一个换行
	leadingFence = regexp.MustCompile("^```[A-Za-z0-9_+.-]*[ \\t]*(\\r?\\n|$)")
	// 同一行的开头围栏："```" + 可选 lua/luau 标记 + 空格
	inlineFence = regexp.MustCompile("^```(?:luau|lua)?[ \\t]*")
	// 结尾围栏："```" 之后只允许空白
	trailingFence = regexp.MustCompile("```\\s*$")
)

// CleanFences 去掉模型违反指令时包裹的 markdown 代码围栏，内部内容原样保留
func CleanFences(text string) string {
	cleaned := text
	if loc := leadingFence.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[loc[1]:]
	} else if loc := inlineFence.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[loc[1]:]
	}
	if loc := trailingFence.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[:loc[0]]
	}
	return cleaned
}

// Finalize 围栏清理 + 空结果兜底
func Finalize(text, fallback string) string {
	if text == "" {
		return fallback
	}
	cleaned := CleanFences(text)
	if strings.TrimSpace(cleaned) == "" {
		return fallback
	}
	return cleaned
}
