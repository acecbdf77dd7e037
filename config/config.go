package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/chemsecure/utils"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	DB       DB
	JWT      JWT
	HTTP     HTTP
}

type DB struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DB_DSN" envDefault:"chemsecure.db"`
}

type JWT struct {
	Key               string `env:"JWT_KEY,required"`
	Issuer            string `env:"JWT_ISSUER" envDefault:"ChemSecureApi"`
	Audience          string `env:"JWT_AUDIENCE" envDefault:"ChemSecureWeb"`
	ExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"60"`
}

func (j JWT) Settings() utils.JWTSettings {
	return utils.JWTSettings{
		Key:               j.Key,
		Issuer:            j.Issuer,
		Audience:          j.Audience,
		ExpirationMinutes: j.ExpirationMinutes,
	}
}

type HTTP struct {
	CORSOrigin    string  `env:"CORS_ORIGIN" envDefault:"http://localhost:8081"`
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT" envDefault:"30"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" envDefault:"10"`
}

// Load reads an optional .env file and then the process environment.
func Load(envPath string) (Config, error) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return env.ParseAs[Config]()
}

// Web is the configuration of the session-backed web layer (cmd/web).
type Web struct {
	Port          string `env:"WEB_PORT" envDefault:"8081"`
	GinMode       string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	APIBaseURL    string `env:"API_BASE_URL" envDefault:"http://localhost:8080/"`
	SessionSecret string `env:"SESSION_SECRET,required"`
}

func LoadWeb(envPath string) (Web, error) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Web{}, err
	}
	return env.ParseAs[Web]()
}
