package models

// UsageCounters accumulates metered service usage over a call. Counters are
// reported incrementally by the media pipeline and read once at session end.
type UsageCounters struct {
	STTSeconds      float64 `bson:"stt_seconds" json:"stt_seconds"`
	LLMInputTokens  int64   `bson:"llm_input_tokens" json:"llm_input_tokens"`
	LLMOutputTokens int64   `bson:"llm_output_tokens" json:"llm_output_tokens"`
	TTSCharacters   int64   `bson:"tts_characters" json:"tts_characters"`
}

// Add merges another set of counters into this one.
func (u *UsageCounters) Add(delta UsageCounters) {
	u.STTSeconds += delta.STTSeconds
	u.LLMInputTokens += delta.LLMInputTokens
	u.LLMOutputTokens += delta.LLMOutputTokens
	u.TTSCharacters += delta.TTSCharacters
}

// CostBreakdown is a read-only per-component cost record computed once at
// session end. Amounts are in dollars, rounded to 4 decimal places.
type CostBreakdown struct {
	SpeechRecognition  float64 `bson:"speech_recognition" json:"speech_recognition"`
	AIProcessingInput  float64 `bson:"ai_processing_input" json:"ai_processing_input"`
	AIProcessingOutput float64 `bson:"ai_processing_output" json:"ai_processing_output"`
	VoiceSynthesis     float64 `bson:"voice_synthesis" json:"voice_synthesis"`
	Avatar             float64 `bson:"avatar" json:"avatar"`
	Total              float64 `bson:"total" json:"total"`
}
