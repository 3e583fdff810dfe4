// Package config loads the contentbuild configuration from YAML with
// CONTENTBUILD_ environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"contentbuild/internal/blob"
	"contentbuild/internal/featureflags"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CONTENTBUILD_"

// DefaultTimezone is applied to timestamps that carry no zone.
const DefaultTimezone = "America/New_York"

// Config is the full tool configuration.
type Config struct {
	BuildType       string          `yaml:"buildtype" validate:"required,oneof=localhost vagovdev vagovstaging vagovprod"`
	BaseURL         string          `yaml:"base_url" validate:"required,url"`
	Timezone        string          `yaml:"timezone" validate:"required,timezone"`
	Logging         Logging         `yaml:"logging"`
	Blob            blob.Config     `yaml:"blob"`
	Reports         Reports         `yaml:"reports"`
	Crawl           Crawl           `yaml:"crawl"`
	Metrics         Metrics         `yaml:"metrics"`
	CMSFeatureFlags map[string]bool `yaml:"cms_feature_flags"`
}

// Logging selects the zap preset and level.
type Logging struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// Reports selects where crawl reports are persisted.
type Reports struct {
	Driver string `yaml:"driver" validate:"oneof=memory sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required_unless=Driver memory"`
}

// Crawl configures the accessibility crawl.
type Crawl struct {
	SitemapPath       string        `yaml:"sitemap_path"`
	Concurrency       int           `yaml:"concurrency" validate:"gt=0"`
	Segments          int           `yaml:"segments" validate:"gt=0"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" validate:"gt=0"`
	AxeScript         string        `yaml:"axe_script"`
	Headless          bool          `yaml:"headless"`
	BrowserBin        string        `yaml:"browser_bin"`
}

// Metrics configures the node_exporter textfile output.
type Metrics struct {
	Textfile string `yaml:"textfile"`
}

var assetBuckets = map[string]string{
	featureflags.Localhost:    "https://s3-us-gov-west-1.amazonaws.com/apps.dev.va.gov",
	featureflags.VAGovDev:     "https://s3-us-gov-west-1.amazonaws.com/apps.dev.va.gov",
	featureflags.VAGovStaging: "https://s3-us-gov-west-1.amazonaws.com/apps.staging.va.gov",
	featureflags.VAGovProd:    "https://prod-va-gov-assets.s3-us-gov-west-1.amazonaws.com",
}

// AssetBucket returns the public asset bucket URL for a build type.
func AssetBucket(buildtype string) (string, error) {
	u, ok := assetBuckets[buildtype]
	if !ok {
		return "", fmt.Errorf("%w: %q", featureflags.ErrUnknownBuildType, buildtype)
	}
	return u, nil
}

// Default returns the localhost configuration.
func Default() Config {
	return Config{
		BuildType: featureflags.Localhost,
		BaseURL:   "http://localhost:3001",
		Timezone:  DefaultTimezone,
		Logging:   Logging{Level: "info", Format: "json"},
		Blob:      blob.Config{Driver: blob.DriverFilesystem, FSRoot: "./build-assets"},
		Reports:   Reports{Driver: "memory"},
		Crawl: Crawl{
			SitemapPath:       "/sitemap.xml",
			Concurrency:       4,
			Segments:          4,
			NavigationTimeout: 30 * time.Second,
			Headless:          true,
		},
	}
}

// Load reads path (defaults when it does not exist), applies environment
// overrides, fills derived values and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	if cfg.Blob.PublicBaseURL == "" {
		if u, err := AssetBucket(cfg.BuildType); err == nil {
			cfg.Blob.PublicBaseURL = u
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.BuildType = getEnv("BUILDTYPE", cfg.BuildType)
	cfg.BaseURL = getEnv("BASE_URL", cfg.BaseURL)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	cfg.Blob.Driver = blob.Driver(getEnv("BLOB_DRIVER", string(cfg.Blob.Driver)))
	cfg.Blob.FSRoot = getEnv("BLOB_FS_ROOT", cfg.Blob.FSRoot)
	cfg.Blob.PublicBaseURL = getEnv("BLOB_PUBLIC_BASE_URL", cfg.Blob.PublicBaseURL)
	cfg.Blob.S3.Bucket = getEnv("BLOB_S3_BUCKET", cfg.Blob.S3.Bucket)
	cfg.Blob.S3.Region = getEnv("BLOB_S3_REGION", cfg.Blob.S3.Region)
	cfg.Blob.S3.Endpoint = getEnv("BLOB_S3_ENDPOINT", cfg.Blob.S3.Endpoint)
	cfg.Blob.S3.PathStyle = getEnvBool("BLOB_S3_PATH_STYLE", cfg.Blob.S3.PathStyle)
	cfg.Blob.S3.AccessKeyID = getEnv("BLOB_S3_ACCESS_KEY_ID", cfg.Blob.S3.AccessKeyID)
	cfg.Blob.S3.SecretAccessKey = getEnv("BLOB_S3_SECRET_ACCESS_KEY", cfg.Blob.S3.SecretAccessKey)

	cfg.Reports.Driver = getEnv("REPORTS_DRIVER", cfg.Reports.Driver)
	cfg.Reports.DSN = getEnv("REPORTS_DSN", cfg.Reports.DSN)

	cfg.Crawl.Concurrency = getEnvInt("CRAWL_CONCURRENCY", cfg.Crawl.Concurrency)
	cfg.Crawl.Segments = getEnvInt("CRAWL_SEGMENTS", cfg.Crawl.Segments)
	cfg.Crawl.Headless = getEnvBool("CRAWL_HEADLESS", cfg.Crawl.Headless)
	cfg.Crawl.BrowserBin = getEnv("CRAWL_BROWSER_BIN", cfg.Crawl.BrowserBin)
	cfg.Crawl.AxeScript = getEnv("CRAWL_AXE_SCRIPT", cfg.Crawl.AxeScript)
	if v := getEnv("CRAWL_NAVIGATION_TIMEOUT", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Crawl.NavigationTimeout = d
		}
	}

	cfg.Metrics.Textfile = getEnv("METRICS_TEXTFILE", cfg.Metrics.Textfile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field rules and reports every failure.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	var all error
	for _, fe := range fieldErrs {
		all = multierr.Append(all, fieldError(fe))
	}
	return all
}

func fieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return fmt.Errorf("config %s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("config %s: failed %s (got %v)", field, fe.Tag(), fe.Value())
}
