package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	GitHub   GitHubConfig   `mapstructure:"github"   validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// AuthConfig contains the shared-secret settings used to authenticate
// inbound task submissions. Either the plaintext secret or a bcrypt hash
// of it must be configured; when both are set the hash wins.
type AuthConfig struct {
	Secret     string `mapstructure:"secret"      validate:"required_without=SecretHash"`
	SecretHash string `mapstructure:"secret_hash" validate:"required_without=Secret"`
}

// DatabaseConfig contains the audit database settings. The audit store is
// best-effort: an empty URL disables auditing rather than failing startup.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey   string `mapstructure:"gemini_api_key"`
	ModelName      string `mapstructure:"model_name"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
}

// GitHubConfig contains the settings for the repository publisher.
type GitHubConfig struct {
	Token   string `mapstructure:"token"    validate:"required"`
	Owner   string `mapstructure:"owner"    validate:"required"`
	APIBase string `mapstructure:"api_base" validate:"omitempty,url"`
	Branch  string `mapstructure:"branch"`
}

// PipelineConfig bounds the background processing pipeline.
// StageCeilingSeconds must leave room inside TotalCeilingSeconds for the
// notification stage.
type PipelineConfig struct {
	TotalCeilingSeconds  int `mapstructure:"total_ceiling_seconds"  validate:"required,gt=0"`
	StageCeilingSeconds  int `mapstructure:"stage_ceiling_seconds"  validate:"required,gt=0,ltfield=TotalCeilingSeconds"`
	NotifyAttempts       int `mapstructure:"notify_attempts"        validate:"required,gt=0"`
	NotifyDelaySeconds   int `mapstructure:"notify_delay_seconds"   validate:"required,gt=0"`
	NotifyTimeoutSeconds int `mapstructure:"notify_timeout_seconds" validate:"required,gt=0"`
}
