package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string    `mapstructure:"service_name"`
	Env         string    `mapstructure:"env"`
	Port        string    `mapstructure:"port"`
	TestMode    bool      `mapstructure:"test_mode"`
	Database    Database  `mapstructure:"database"`
	AWS         AWS       `mapstructure:"aws"`
	Stripe      Stripe    `mapstructure:"stripe"`
	Merchant    Merchant  `mapstructure:"merchant"`
	Telemetry   Telemetry `mapstructure:"telemetry"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AWS struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	EndpointSNS     string `mapstructure:"endpoint_sns"`
	EndpointSQS     string `mapstructure:"endpoint_sqs"`
	SNSTopicArn     string `mapstructure:"sns_topic_arn"`
	SQSQueueURL     string `mapstructure:"sqs_queue_url"`
}

type Stripe struct {
	SecretKey     string `mapstructure:"secret_key"`
	PublicKey     string `mapstructure:"public_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
	CancelURL     string `mapstructure:"cancel_url"`
	ReturnURL     string `mapstructure:"return_url"`
}

// Merchant holds the billing identity presented during checkout
type Merchant struct {
	Identifier  string `mapstructure:"identifier"`
	DisplayName string `mapstructure:"display_name"`
	URLScheme   string `mapstructure:"url_scheme"`
	CustomerRef string `mapstructure:"customer_ref"`
	Email       string `mapstructure:"email"`
	Phone       string `mapstructure:"phone"`
	Line1       string `mapstructure:"line1"`
	City        string `mapstructure:"city"`
	State       string `mapstructure:"state"`
	PostalCode  string `mapstructure:"postal_code"`
	Country     string `mapstructure:"country"`
}

func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("unable to get current file")
	}

	configDir := filepath.Join(filepath.Dir(filename))
	viper.SetConfigName(getConfigName())
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	// Allow environment variables to override config
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CHECKOUT")

	// Set defaults from environment variables for backward compatibility
	setDefaultsFromEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

// setDefaultsFromEnv sets defaults from environment variables for backward compatibility
func setDefaultsFromEnv() {
	// Service defaults
	viper.SetDefault("service_name", "checkout-service")
	viper.SetDefault("env", getEnv("ENV", "local"))
	viper.SetDefault("port", getEnv("PORT", "8080"))
	viper.SetDefault("test_mode", getEnv("TEST_MODE", "true") == "true")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5433)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "checkout_gateway")
	viper.SetDefault("database.ssl_mode", "disable")

	// Override with DATABASE_URL if provided
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		viper.Set("database.url", dbURL)
	}

	// AWS defaults
	viper.SetDefault("aws.access_key_id", getEnv("AWS_ACCESS_KEY_ID", "test"))
	viper.SetDefault("aws.secret_access_key", getEnv("AWS_SECRET_ACCESS_KEY", "test"))
	viper.SetDefault("aws.region", getEnv("AWS_DEFAULT_REGION", "us-east-1"))
	viper.SetDefault("aws.endpoint_sns", getEnv("AWS_ENDPOINT_URL_SNS", "http://localhost:4566"))
	viper.SetDefault("aws.endpoint_sqs", getEnv("AWS_ENDPOINT_URL_SQS", "http://localhost:4566"))
	viper.SetDefault("aws.sns_topic_arn", getEnv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:checkout-events"))
	viper.SetDefault("aws.sqs_queue_url", getEnv("SQS_QUEUE_URL", "http://localhost:4566/000000000000/checkout-events"))

	// Stripe defaults
	viper.SetDefault("stripe.secret_key", getEnv("STRIPE_SECRET_KEY", "sk_test_placeholder"))
	viper.SetDefault("stripe.public_key", getEnv("STRIPE_PUBLIC_KEY", "pk_test_placeholder"))
	viper.SetDefault("stripe.webhook_secret", getEnv("STRIPE_WEBHOOK_SECRET", ""))
	viper.SetDefault("stripe.success_url", getEnv("STRIPE_SUCCESS_URL", "http://localhost:8080/checkout/success"))
	viper.SetDefault("stripe.cancel_url", getEnv("STRIPE_CANCEL_URL", "http://localhost:8080/checkout/cancel"))
	viper.SetDefault("stripe.return_url", getEnv("STRIPE_RETURN_URL", "http://localhost:8080/checkout/return"))

	// Merchant defaults
	viper.SetDefault("merchant.identifier", getEnv("MERCHANT_IDENTIFIER", "merchant.test.checkout-gateway"))
	viper.SetDefault("merchant.display_name", "Draftea Checkout")
	viper.SetDefault("merchant.url_scheme", getEnv("MERCHANT_URL_SCHEME", "checkoutgateway"))
	viper.SetDefault("merchant.customer_ref", "default")
	viper.SetDefault("merchant.email", "payments@draftea.test")
	viper.SetDefault("merchant.phone", "")
	viper.SetDefault("merchant.line1", "Av. Insurgentes Sur 1602")
	viper.SetDefault("merchant.city", "Mexico City")
	viper.SetDefault("merchant.state", "CDMX")
	viper.SetDefault("merchant.postal_code", "03940")
	viper.SetDefault("merchant.country", "MX")

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", getEnv("TELEMETRY_ENABLED", "false") == "true")
	viper.SetDefault("telemetry.otlp_endpoint", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDatabaseURL constructs database URL from config
func (c *Config) GetDatabaseURL() string {
	// Check if full URL is provided via DATABASE_URL
	if url := viper.GetString("database.url"); url != "" {
		return url
	}

	// Construct URL from individual components
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
