package yoga

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// BaseConfig is read from YOGA_* environment variables
type BaseConfig struct {
	HTTPAddr        string        `env:"YOGA_HTTP_ADDR" envDefault:":8080" json:"http_addr"`
	DBDriver        string        `env:"YOGA_DB_DRIVER" envDefault:"sqlite" json:"db_driver"`
	DBDSN           string        `env:"YOGA_DB_DSN" envDefault:"file:yoga.db?cache=shared" json:"db_dsn"`
	SigningKey      string        `env:"YOGA_JWT_SECRET,required" json:"-"`
	TokenExpiration time.Duration `env:"YOGA_JWT_EXPIRATION" envDefault:"24h" json:"token_expiration"`
	Issuer          string        `env:"YOGA_JWT_ISSUER" json:"issuer"`
	AuthScheme      string        `env:"YOGA_AUTH_SCHEME" envDefault:"Bearer" json:"auth_scheme"`
	ContextKey      string        `env:"YOGA_CONTEXT_KEY" envDefault:"user" json:"context_key"`
	TokenLookup     string        `env:"YOGA_TOKEN_LOOKUP" envDefault:"header:Authorization" json:"token_lookup"`
	BcryptCost      int           `env:"YOGA_BCRYPT_COST" envDefault:"10" json:"bcrypt_cost"`
	CORSOrigins     []string      `env:"YOGA_CORS_ORIGINS" envSeparator:"," envDefault:"*" json:"cors_origins"`
	Migrate         bool          `env:"YOGA_MIGRATE" envDefault:"true" json:"migrate"`
	Debug           bool          `env:"YOGA_DEBUG" envDefault:"false" json:"debug"`
}

var _ Config = (*BaseConfig)(nil)

// LoadConfig reads an optional .env file and parses the environment.
// Files listed in dotenv override the process environment.
func LoadConfig(dotenv ...string) (*BaseConfig, error) {
	if len(dotenv) == 0 {
		_ = godotenv.Load()
	} else {
		for _, p := range dotenv {
			if err := godotenv.Overload(p); err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to load env file").
					WithMetadata(map[string]any{"path": p})
			}
		}
	}

	cfg := &BaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "parse env")
	}
	return cfg, nil
}

func (c BaseConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c BaseConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func (c BaseConfig) GetTokenExpiration() time.Duration {
	return c.TokenExpiration
}

func (c BaseConfig) GetTokenLookup() string {
	return c.TokenLookup
}

func (c BaseConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c BaseConfig) GetIssuer() string {
	return c.Issuer
}

// GetCORSOrigins joins the allowed origins the way fiber's cors expects
func (c BaseConfig) GetCORSOrigins() string {
	return strings.Join(c.CORSOrigins, ",")
}
