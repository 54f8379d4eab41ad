package config

import "time"

// 生成请求常量
const (
	// Temperature 低随机性采样，保证代码输出稳定
	Temperature float32 = 0.2

	// FallbackCode 模型返回空文本时展示的占位脚本
	FallbackCode = "-- No code generated."

	// GenerationFailedMessage 生成失败时对调用方暴露的唯一错误文案
	GenerationFailedMessage = "Failed to generate script. Please try again."

	// FailureMessage 页面上展示的失败提示
	FailureMessage = "Failed to generate script. Ensure your API key is valid or try a different prompt."
)

// SystemInstruction 固定的系统指令
const SystemInstruction = `
You are an expert Roblox Lua scripter (Luau). 
Your task is to generate robust, optimized, and clearly commented Lua scripts for Roblox based on user prompts.

Rules:
1. Output ONLY the raw Lua code. Do not wrap it in markdown code blocks (e.g., no ` + "```lua" + `).
2. Include comments explaining complex parts of the logic.
3. Use Roblox best practices (e.g., Connect signals properly, use task.wait() instead of wait(), use local variables).
4. If the script requires a specific setup (e.g., needs to be in ServerScriptService, or needs a Part named "Trap"), mention it in a comment at the very top.
5. Handle errors gracefully where applicable.
6. If the user asks for something dangerous or against TOS, decline politely in a comment.
`

// 页面交互常量
const (
	// CopyResetDelay 复制成功提示的持续时间
	CopyResetDelay = 2 * time.Second

	// CopyLabel 复制按钮默认文案
	CopyLabel = "Copy Code"

	// CopiedLabel 复制成功后的按钮文案
	CopiedLabel = "Copied!"
)

// 请求ID常量
const (
	// RequestIDPrefix 请求ID前缀
	RequestIDPrefix = "req_"

	// RequestIDHeader 请求ID头
	RequestIDHeader = "X-Request-ID"
)
