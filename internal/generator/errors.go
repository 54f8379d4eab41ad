package generator

import "errors"

var (
	// ErrEmptyPrompt 提示词为空或只有空白
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrGenerationFailed 唯一对外暴露的失败类型，不区分具体原因
	ErrGenerationFailed = errors.New("generation failed")
)
