// Package cost maps metered service usage to a monetary breakdown via a
// fixed pricing table. Stateless; computed once at session end.
package cost

import (
	"math"

	"voicebook/config"
	"voicebook/models"
)

// PricingTable holds the per-component rates. Rate units differ per
// component: per minute of audio, per 1K tokens, per character.
type PricingTable struct {
	STTPerMinute    float64
	LLMInputPer1K   float64
	LLMOutputPer1K  float64
	TTSPerCharacter float64
	AvatarPerMinute float64
}

// TableFromConfig builds the pricing table from the loaded configuration.
func TableFromConfig() PricingTable {
	return PricingTable{
		STTPerMinute:    config.AppConfig.STTRatePerMinute,
		LLMInputPer1K:   config.AppConfig.LLMInputRatePer1K,
		LLMOutputPer1K:  config.AppConfig.LLMOutputRatePer1K,
		TTSPerCharacter: config.AppConfig.TTSRatePerCharacter,
		AvatarPerMinute: config.AppConfig.AvatarRatePerMinute,
	}
}

// Calculate applies the pricing table to the accumulated usage counters.
// Missing or zero counters cost nothing; session duration drives the avatar
// component, which runs for the whole call.
func Calculate(usage models.UsageCounters, pricing PricingTable, sessionDurationSeconds int) models.CostBreakdown {
	stt := usage.STTSeconds / 60 * pricing.STTPerMinute
	llmIn := float64(usage.LLMInputTokens) / 1000 * pricing.LLMInputPer1K
	llmOut := float64(usage.LLMOutputTokens) / 1000 * pricing.LLMOutputPer1K
	tts := float64(usage.TTSCharacters) * pricing.TTSPerCharacter

	var avatar float64
	if sessionDurationSeconds > 0 {
		avatar = float64(sessionDurationSeconds) / 60 * pricing.AvatarPerMinute
	}

	return models.CostBreakdown{
		SpeechRecognition:  round4(stt),
		AIProcessingInput:  round4(llmIn),
		AIProcessingOutput: round4(llmOut),
		VoiceSynthesis:     round4(tts),
		Avatar:             round4(avatar),
		Total:              round4(stt + llmIn + llmOut + tts + avatar),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
