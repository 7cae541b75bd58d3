package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug        bool
		TestMode     bool
		Env          string
		Build        string
		AppName      string
		SecretKey    string
		RollbarToken string
		WorkDir      string

		Server   ServerConfig
		Session  SessionConfig
		Redis    RedisConfig
		Portal   PortalConfig
		Accounts []AccountConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	SessionConfig struct {
		Store      string // memory | redis
		CookieName string
		TTL        time.Duration
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	PortalConfig struct {
		// SkipAuth starts every new session authenticated as admin (local development only).
		SkipAuth bool
		// TrustedLogin lets the login form pick a role without checking credentials.
		TrustedLogin bool
	}

	// AccountConfig declares a demo account for the in-memory user repository.
	AccountConfig struct {
		Name         string   `mapstructure:"name"`
		Username     string   `mapstructure:"username"`
		Email        string   `mapstructure:"email"`
		PasswordHash string   `mapstructure:"passwordHash"`
		Roles        []string `mapstructure:"roles"`
	}
)

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Masomo")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.cookieName", "masomo_session")
	v.SetDefault("session.ttl", 12*time.Hour)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("portal.skipAuth", false)
	v.SetDefault("portal.trustedLogin", false)
}

// NewConfig loads the configuration from defaults, `config/.env.<env>`, `config/portal.yaml`
// and the environment (prefixed with ENV, e.g. DEV_SERVER_ADDRESS).
func NewConfig() *Config {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	v.SetConfigName("portal")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(wd, "config"))
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("config.ReadInConfig: %v", err)
		}
	}

	conf := configFromViper(v)
	conf.Env = env
	conf.WorkDir = wd
	return conf
}

func configFromViper(v *viper.Viper) *Config {
	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(v.GetString("session.store")),
			CookieName: v.GetString("session.cookieName"),
			TTL:        v.GetDuration("session.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Portal: PortalConfig{
			SkipAuth:     v.GetBool("portal.skipAuth"),
			TrustedLogin: v.GetBool("portal.trustedLogin"),
		},
	}
	if err := v.UnmarshalKey("accounts", &conf.Accounts); err != nil {
		log.Fatalf("config.UnmarshalKey(accounts): %v", err)
	}
	return conf
}
