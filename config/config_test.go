package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelMap_DefaultModelIsGemini(t *testing.T) {
	provider, exists := ModelMap[DefaultModel]
	assert.True(t, exists)
	assert.Equal(t, ProviderGemini, provider)
}

func TestModelMap_ProvidersAreKnown(t *testing.T) {
	for model, provider := range ModelMap {
		assert.Contains(t, []string{ProviderGemini, ProviderOpenAI}, provider,
			"Model %s should map to a known provider", model)
	}
}

func TestIsKnownModel(t *testing.T) {
	assert.True(t, IsKnownModel(ProviderGemini, "gemini-2.5-flash"))
	assert.True(t, IsKnownModel(ProviderOpenAI, "gpt-4o-mini"))
	assert.False(t, IsKnownModel(ProviderOpenAI, "gemini-2.5-flash"))
	assert.False(t, IsKnownModel(ProviderGemini, "non-existent-model"))
}

func TestMaxPromptLength_Default(t *testing.T) {
	assert.Equal(t, 8000, MaxPromptLength)
}

func TestSystemInstruction_ForbidsMarkdownFences(t *testing.T) {
	assert.Contains(t, SystemInstruction, "Output ONLY the raw Lua code")
	assert.True(t, strings.Contains(SystemInstruction, "```lua"))
}

func TestTemperature_IsLowRandomness(t *testing.T) {
	assert.LessOrEqual(t, Temperature, float32(0.3))
	assert.Greater(t, Temperature, float32(0))
}
