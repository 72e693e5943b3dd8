package config

import (
	"errors"
	"net"
	"strconv"

	"github.com/Skotchmaster/tokoku/internal/search"
	pkgcfg "github.com/Skotchmaster/tokoku/pkg/config"
	"github.com/Skotchmaster/tokoku/pkg/db"
)

type Config struct {
	ServiceName string
	Host        string
	Port        int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret    []byte
	AuthRequired bool
	CSRFEnabled  bool

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	CORSOrigins []string
}

// Load reads the configuration from the environment. A .env file, if any,
// must already have been loaded.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:  pkgcfg.EnvDefault("SERVICE_NAME", "tokoku"),
		Host:         pkgcfg.EnvDefault("SERVER_HOST", "0.0.0.0"),
		Port:         pkgcfg.EnvIntDefault("SERVER_PORT", 3000),
		LogLevel:     pkgcfg.EnvDefault("LOG_LEVEL", "info"),
		DBDriver:     pkgcfg.EnvDefault("DB_DRIVER", db.DriverSQLite),
		DatabaseURL:  pkgcfg.EnvDefault("DATABASE_URL", "tokoku.db"),
		JWTSecret:    []byte(pkgcfg.EnvDefault("JWT_SECRET", "")),
		AuthRequired: pkgcfg.EnvBoolDefault("AUTH_REQUIRED", false),
		CSRFEnabled:  pkgcfg.EnvBoolDefault("CSRF_ENABLED", false),
		KafkaBrokers: pkgcfg.CSV(pkgcfg.EnvDefault("KAFKA_BROKERS", "")),
		ESURL:        pkgcfg.EnvDefault("ES_URL", ""),
		ESUser:       pkgcfg.EnvDefault("ES_USER", ""),
		ESPassword:   pkgcfg.EnvDefault("ES_PASSWORD", ""),
		ESIndex:      pkgcfg.EnvDefault("ES_INDEX", search.DefaultIndex),
		CORSOrigins:  pkgcfg.CSV(pkgcfg.EnvDefault("CORS_ORIGINS", "*")),
	}

	if cfg.DBDriver != db.DriverSQLite && cfg.DBDriver != db.DriverPostgres {
		return nil, errors.New("DB_DRIVER must be sqlite or postgres")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, errors.New("SERVER_PORT out of range")
	}
	if cfg.AuthRequired && len(cfg.JWTSecret) == 0 {
		return nil, errors.New("AUTH_REQUIRED needs JWT_SECRET")
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
