package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env  string `validate:"required"`
	Port string `validate:"required,numeric"`
}

type LogCfg struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Format string `validate:"oneof=json console"`
}

// GatewayCfg describes the single merchant account served by this process.
type GatewayCfg struct {
	Provider         string `validate:"required"`
	Account          string `validate:"required"`
	ClientID         string `validate:"required"`
	APIKey           string `validate:"required"`
	Test             bool
	BaseURL          string `validate:"omitempty,url"`
	DefaultCurrency  string `validate:"len=3,alpha"`
	TimeoutSec       int    `validate:"min=1"`
	LoginMaxAttempts int    `validate:"min=1"`
}

type SecurityCfg struct {
	AdminToken string // guards /api/v1; empty disables the check
}

type Cfg struct {
	App     AppCfg
	Log     LogCfg
	Gateway GatewayCfg
	Sec     SecurityCfg
}

// Load reads .env (if present) and the process environment. Invalid
// configuration is fatal.
func Load() Cfg {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := Read()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// Read builds the configuration from environment variables and validates it.
func Read() (Cfg, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := build(v)
	if err := cfg.Validate(); err != nil {
		return Cfg{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "sandbox")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("PAYMENT_PROVIDER", "airwallex")
	v.SetDefault("AIRWALLEX_ACCOUNT", "default")
	v.SetDefault("AIRWALLEX_TEST", true)
	v.SetDefault("AIRWALLEX_DEFAULT_CURRENCY", "AUD")
	v.SetDefault("HTTP_TIMEOUT_SEC", 30)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 3)
}

func build(v *viper.Viper) Cfg {
	return Cfg{
		App: AppCfg{
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("APP_PORT"),
		},
		Log: LogCfg{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Gateway: GatewayCfg{
			Provider:         strings.ToLower(strings.TrimSpace(v.GetString("PAYMENT_PROVIDER"))),
			Account:          strings.TrimSpace(v.GetString("AIRWALLEX_ACCOUNT")),
			ClientID:         strings.TrimSpace(v.GetString("AIRWALLEX_CLIENT_ID")),
			APIKey:           strings.TrimSpace(v.GetString("AIRWALLEX_API_KEY")),
			Test:             v.GetBool("AIRWALLEX_TEST"),
			BaseURL:          strings.TrimSpace(v.GetString("AIRWALLEX_BASE_URL")),
			DefaultCurrency:  strings.ToUpper(v.GetString("AIRWALLEX_DEFAULT_CURRENCY")),
			TimeoutSec:       v.GetInt("HTTP_TIMEOUT_SEC"),
			LoginMaxAttempts: v.GetInt("LOGIN_MAX_ATTEMPTS"),
		},
		Sec: SecurityCfg{
			AdminToken: strings.TrimSpace(v.GetString("ADMIN_TOKEN")),
		},
	}
}

// Validate fails fast on the first missing or malformed setting.
func (c Cfg) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return fmt.Errorf("config %s failed %q check", fe.Namespace(), fe.Tag())
}
