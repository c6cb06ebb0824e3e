package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "shopkit.yaml"
	EnvFileName    = ".env"
)

// Database authentication methods.
const (
	AuthPassword = "password"
	AuthAWS      = "aws"
	AuthAzure    = "azure"
	AuthGoogle   = "google"
)

type ShopifyConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Scopes    string `yaml:"scopes"`
	AppURL    string `yaml:"app_url"`
}

type DatabaseConfig struct {
	URL               string `yaml:"url"`
	AuthMethod        string `yaml:"auth_method"`
	AWSRegion         string `yaml:"aws_region,omitempty"`
	AzureTenantID     string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID     string `yaml:"azure_client_id,omitempty"`
	AzureClientSecret string `yaml:"azure_client_secret,omitempty"`
	CloudSQLInstance  string `yaml:"cloudsql_instance,omitempty"`
}

// AppConfig is the application configuration, populated once at startup
// and passed to the components that need it.
type AppConfig struct {
	Env      string         `yaml:"env"`
	Port     int            `yaml:"port"`
	Shopify  ShopifyConfig  `yaml:"shopify"`
	Database DatabaseConfig `yaml:"database"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *AppConfig {
	return &AppConfig{
		Env:  "development",
		Port: 3000,
		Shopify: ShopifyConfig{
			Scopes: "write_products,read_customers",
			AppURL: "http://localhost:3000",
		},
		Database: DatabaseConfig{
			URL:        "postgresql://localhost:5432/myapp",
			AuthMethod: AuthPassword,
		},
	}
}

// LoadFile reads shopkit.yaml from dir on top of Defaults.
func LoadFile(dir string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", shopkit.ErrInvalidConfig, ConfigFileName, err)
	}
	return cfg, nil
}

// Load builds the configuration for the project in dir. Later sources win:
// defaults, shopkit.yaml, .env, then the process environment.
func Load(dir string) (*AppConfig, error) {
	return LoadWithLookup(dir, os.LookupEnv)
}

// LoadWithLookup is Load with an injectable environment.
func LoadWithLookup(dir string, lookup func(string) (string, bool)) (*AppConfig, error) {
	cfg, err := LoadFile(dir)
	if errors.Is(err, ErrConfigNotFound) {
		cfg = Defaults()
	} else if err != nil {
		return nil, err
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, EnvFileName))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: reading %s: %v", shopkit.ErrInvalidConfig, EnvFileName, err)
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := cfg.applyEnv(get); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv(get func(string) (string, bool)) error {
	set := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v, ok := get(key); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}

	set(&c.Env, "APP_ENV", "NODE_ENV")
	set(&c.Shopify.APIKey, "SHOPIFY_API_KEY")
	set(&c.Shopify.APISecret, "SHOPIFY_API_SECRET")
	set(&c.Shopify.Scopes, "SHOPIFY_SCOPES", "SCOPES")
	set(&c.Shopify.AppURL, "SHOPIFY_APP_URL")
	set(&c.Database.URL, "DATABASE_URL")
	set(&c.Database.AuthMethod, "DATABASE_AUTH")
	set(&c.Database.AWSRegion, "AWS_REGION")
	set(&c.Database.AzureTenantID, "AZURE_TENANT_ID")
	set(&c.Database.AzureClientID, "AZURE_CLIENT_ID")
	set(&c.Database.AzureClientSecret, "AZURE_CLIENT_SECRET")
	set(&c.Database.CloudSQLInstance, "CLOUDSQL_INSTANCE")

	var port string
	set(&port, "PORT")
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("%w: PORT must be a number, got %q", shopkit.ErrInvalidConfig, port)
		}
		c.Port = n
	}
	return nil
}

// Scopes returns the requested Shopify access scopes.
func (c *AppConfig) Scopes() []string {
	var scopes []string
	for _, s := range strings.Split(c.Shopify.Scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

// IsProduction reports whether the app runs in production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *AppConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Validate checks the settings the server needs. Every problem is reported.
func (c *AppConfig) Validate() error {
	var problems []string

	if c.Shopify.APIKey == "" {
		problems = append(problems, "SHOPIFY_API_KEY is required")
	}
	if c.Shopify.APISecret == "" {
		problems = append(problems, "SHOPIFY_API_SECRET is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}

	switch c.Database.AuthMethod {
	case AuthPassword, AuthAWS:
	case AuthAzure:
		if c.Database.AzureClientSecret != "" && (c.Database.AzureTenantID == "" || c.Database.AzureClientID == "") {
			problems = append(problems, "AZURE_TENANT_ID and AZURE_CLIENT_ID are required with AZURE_CLIENT_SECRET")
		}
	case AuthGoogle:
		if c.Database.CloudSQLInstance == "" {
			problems = append(problems, "CLOUDSQL_INSTANCE is required when DATABASE_AUTH=google")
		}
	default:
		return fmt.Errorf("%w: DATABASE_AUTH %q (use password, aws, azure or google)",
			shopkit.ErrUnsupportedAuthMethod, c.Database.AuthMethod)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", shopkit.ErrInvalidConfig, strings.Join(problems, "\n  - "))
	}
	return nil
}
