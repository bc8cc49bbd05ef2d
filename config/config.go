// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package config

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// PostgresConfig holds the connection settings for the archive database.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"required"`
	DbName            string `mapstructure:"db_name" validate:"required"`
	User              string `mapstructure:"auth__user" validate:"required"`
	Password          string `mapstructure:"auth__password" validate:"required"`
	SslMode           string `mapstructure:"ssl_mode"`
	MaxOpenConnection int    `mapstructure:"max_open_connection"`
	MaxIdleConnection int    `mapstructure:"max_ideal_connection"`
}

// SpeechConfig selects and configures the speech providers used by the
// interview engine.
type SpeechConfig struct {
	// Provider for speech-to-text: "google" or "deepgram".
	ListenProvider string `mapstructure:"listen_provider" validate:"required"`
	// Language code(s) for recognition, comma separated.
	ListenLanguage string `mapstructure:"listen_language"`
	// Voice id for narration.
	SpeakVoice string `mapstructure:"speak_voice"`
	// Credential material: Google service account JSON or Deepgram API key.
	GoogleCredentialJson string `mapstructure:"google_credential_json"`
	GoogleProjectId      string `mapstructure:"google_project_id"`
	DeepgramApiKey       string `mapstructure:"deepgram_api_key"`
}

// Application config structure
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`

	PostgresConfig PostgresConfig `mapstructure:"postgres" validate:"required"`
	SpeechConfig   SpeechConfig   `mapstructure:"speech" validate:"required"`

	// Upstream services the engine calls.
	QuestionHost string `mapstructure:"question_host" validate:"required"`
	ScoringHost  string `mapstructure:"scoring_host" validate:"required"`

	// Uniform per-question budget applied when the question payload does not
	// carry one.
	DefaultQuestionTimeSeconds int `mapstructure:"default_question_time_seconds" validate:"required"`
}

// reading config and intializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("Reading from env varaibles.")
	}

	return vConfig, nil
}

func setDefault(v *viper.Viper) {
	// setting all default values
	// keeping watch on https://github.com/spf13/viper/issues/188

	v.SetDefault("SERVICE_NAME", "interview-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 9096)
	v.SetDefault("LOG_LEVEL", "debug")

	v.SetDefault("QUESTION_HOST", "")
	v.SetDefault("SCORING_HOST", "")
	v.SetDefault("DEFAULT_QUESTION_TIME_SECONDS", 60)

	v.SetDefault("SPEECH__LISTEN_PROVIDER", "google")
	v.SetDefault("SPEECH__LISTEN_LANGUAGE", "en-US")
	v.SetDefault("SPEECH__SPEAK_VOICE", "en-US-Chirp-HD-F")
	v.SetDefault("SPEECH__GOOGLE_CREDENTIAL_JSON", "")
	v.SetDefault("SPEECH__GOOGLE_PROJECT_ID", "")
	v.SetDefault("SPEECH__DEEPGRAM_API_KEY", "")

	v.SetDefault("POSTGRES__HOST", "localhost")
	v.SetDefault("POSTGRES__PORT", 5432)
	v.SetDefault("POSTGRES__DB_NAME", "<>")
	v.SetDefault("POSTGRES__AUTH__USER", "<>")
	v.SetDefault("POSTGRES__AUTH__PASSWORD", "<>")
	v.SetDefault("POSTGRES__MAX_OPEN_CONNECTION", 10)
	v.SetDefault("POSTGRES__MAX_IDEAL_CONNECTION", 10)
	v.SetDefault("POSTGRES__SSL_MODE", "disable")
}

// Getting application config from viper
func GetApplicationConfig(v *viper.Viper) (*AppConfig, error) {
	var config AppConfig
	err := v.Unmarshal(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}

	// valdating the app config
	validate := validator.New()
	err = validate.Struct(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}
	return &config, nil
}
