package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisEventDB         int    `mapstructure:"REDIS_EVENT_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	EventChannelPrefix   string `mapstructure:"EVENT_CHANNEL_PREFIX"`

	// Slot seeding.
	SlotTimes           []string `mapstructure:"SLOT_TIMES"`
	SlotSeedDays        int      `mapstructure:"SLOT_SEED_DAYS"`
	AppointmentDuration int      `mapstructure:"APPOINTMENT_DURATION"`

	// Pricing rates, January 2026. Update as providers change rates.
	STTRatePerMinute     float64 `mapstructure:"STT_RATE_PER_MINUTE"`
	LLMInputRatePer1K    float64 `mapstructure:"LLM_INPUT_RATE_PER_1K"`
	LLMOutputRatePer1K   float64 `mapstructure:"LLM_OUTPUT_RATE_PER_1K"`
	TTSRatePerCharacter  float64 `mapstructure:"TTS_RATE_PER_CHARACTER"`
	AvatarRatePerMinute  float64 `mapstructure:"AVATAR_RATE_PER_MINUTE"`
	ReminderLeadMinutes  int     `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "voicebook")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_EVENT_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("EVENT_CHANNEL_PREFIX", "voicebook:events")
	viper.SetDefault("SLOT_TIMES", []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"})
	viper.SetDefault("SLOT_SEED_DAYS", 14)
	viper.SetDefault("APPOINTMENT_DURATION", 30)
	viper.SetDefault("STT_RATE_PER_MINUTE", 0.0043)
	viper.SetDefault("LLM_INPUT_RATE_PER_1K", 0.0015)
	viper.SetDefault("LLM_OUTPUT_RATE_PER_1K", 0.002)
	viper.SetDefault("TTS_RATE_PER_CHARACTER", 0.00001)
	viper.SetDefault("AVATAR_RATE_PER_MINUTE", 0.006)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 1440)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
