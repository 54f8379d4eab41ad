package utils

import "math"

// systemOverheadTokens 系统指令的固定开销
const systemOverheadTokens = 2

// messageOverheadTokens 每条消息的角色标记开销
const messageOverheadTokens = 3

// EstimateTextTokens 本地估算文本的token数量，上游未返回用量时用于日志
// 英文按长度分段的字符密度计算，CJK 汉字每字约 1 token
func EstimateTextTokens(text string) int {
	if text == "" {
		return 0
	}

	cjk, other := 0, 0
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			cjk++
		} else {
			other++
		}
	}

	tokens := cjk
	if other == 0 {
		return tokens + 1 // 纯中文有基础开销
	}

	charsPerToken := 2.5
	switch {
	case other < 50:
		charsPerToken = 2.8
	case other < 100:
		charsPerToken = 2.6
	}
	tokens += int(math.Ceil(float64(other) / charsPerToken))

	// 长文本 BPE 密度更高
	switch {
	case tokens >= 1000:
		tokens = int(float64(tokens) * 0.85)
	case tokens >= 300:
		tokens = int(float64(tokens) * 0.9)
	}
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// EstimatePromptTokens 系统指令加一条用户消息的估算输入token
func EstimatePromptTokens(systemInstruction, prompt string) int {
	total := messageOverheadTokens + EstimateTextTokens(prompt)
	if systemInstruction != "" {
		total += systemOverheadTokens + EstimateTextTokens(systemInstruction)
	}
	return total
}
