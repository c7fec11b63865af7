package config

// Config holds the configuration of the application
// Use cmd.NewConfig to create a new instance
type Config struct {
	LLM       LLM             `mapstructure:"llm"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Store     StoreConfig     `mapstructure:"store"`
	Billy     BillyConfig     `mapstructure:"billy"`
	Google    GoogleConfig    `mapstructure:"google"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

type LLM struct {
	Service             string `mapstructure:"service"`
	Model               string `mapstructure:"model"`
	AnthropicAPIKey     string `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey        string `mapstructure:"openai_api_key"`
	AzureOpenAIEndpoint string `mapstructure:"azure_openai_endpoint"`
	OpenAIEndpoint      string `mapstructure:"openai_endpoint"`
	OpenAIOrgID         string `mapstructure:"openai_org_id"`
}

// AssistantConfig holds the business policy knobs for the intent-action
// pipeline. These are deliberately configuration data rather than code
// constants so they can be tuned without a deploy.
type AssistantConfig struct {
	// RequireApproval gates every actionable intent behind an explicit
	// user approval round-trip before anything is executed.
	RequireApproval bool `mapstructure:"require_approval"`
	// ConfidenceThreshold is the minimum classifier confidence required
	// before a detected intent is acted upon.
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	// HourlyRate is the fixed price in DKK per work hour per person.
	HourlyRate float64 `mapstructure:"hourly_rate"`
	// InvoicePaymentTermsDays applies to invoices for one-time jobs.
	InvoicePaymentTermsDays int `mapstructure:"invoice_payment_terms_days"`
	// DefaultBookingHours is the event duration used when no end time is given.
	DefaultBookingHours int `mapstructure:"default_booking_hours"`
}

type StoreConfig struct {
	Type     string         `mapstructure:"type"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type BillyConfig struct {
	// APIKey is loaded from ENV not config file.
	APIKey         string `mapstructure:"api_key"`
	OrganizationID string `mapstructure:"organization_id"`
	BaseURL        string `mapstructure:"base_url"`
}

type GoogleConfig struct {
	// ServiceAccountKeyFile points at a service account JSON key with
	// domain-wide delegation for the Gmail and Calendar scopes.
	ServiceAccountKeyFile string `mapstructure:"service_account_key_file"`
	ImpersonatedUser      string `mapstructure:"impersonated_user"`
	CalendarID            string `mapstructure:"calendar_id"`
	TokenURL              string `mapstructure:"token_url"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Required bool   `mapstructure:"required"`
}
