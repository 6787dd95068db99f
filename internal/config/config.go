package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Env         string        `yaml:"env"` // "development" or "production"
	Port        int           `yaml:"port"`
	FrontendUrl string        `yaml:"frontend_url"` // public URL of the back-office frontend
	JwtTTL      time.Duration `yaml:"jwt_ttl"`
	LogLevel    string        `yaml:"log_level"`
	LogJSON     bool          `yaml:"log_json"`
}

type Private struct {
	JwtKey        string `yaml:"jwt_key"`
	AdminPassword string `yaml:"admin_password"` // seeds admin@admin.com when set
	Pg            Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

// Production gates the Secure cookie flag and the cookie Domain attribute.
func (s *Config) Production() bool {
	return s.Public.Env == "production"
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}

	// The signing secret has no runtime default. Serving traffic without it
	// would make every issued token unverifiable across restarts.
	if cfg.Private.JwtKey == "" {
		panic("jwt_key is required in private.yaml")
	}
	if cfg.Public.JwtTTL <= 0 {
		panic("jwt_ttl must be positive")
	}

	return cfg
}
