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
	Http        Http      `yaml:"http"`
	RateLimit   RateLimit `yaml:"rate_limit"`
	Cache       Cache     `yaml:"cache"`
	Upload      Upload    `yaml:"upload"`
	Log         Log       `yaml:"log"`
	Environment string    `yaml:"environment"`
}

type Http struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SecureCookies  bool     `yaml:"secure_cookies"`
}

type RateLimit struct {
	WindowSeconds  int `yaml:"window_seconds"`  // sliding window size
	Capacity       int `yaml:"capacity"`        // max requests per window
	TimeoutSeconds int `yaml:"timeout_seconds"` // remote backend call timeout
}

func (r RateLimit) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func (r RateLimit) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

type Cache struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type Upload struct {
	MaxFileSizeBytes int64    `yaml:"max_file_size_bytes"`
	MaxFiles         int      `yaml:"max_files"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Private struct {
	Pg               Pg               `yaml:"pg"`
	RateLimitBackend RateLimitBackend `yaml:"rate_limit_backend"`
	Announce         Announce         `yaml:"announce"`
	ObjectStorage    ObjectStorage    `yaml:"object_storage"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// RateLimitBackend is the remote counter service. Leaving Url empty
// disables the generic limiter entirely: submissions degrade open.
type RateLimitBackend struct {
	Url   string `yaml:"url"`
	Token string `yaml:"token"`
}

type Announce struct {
	BaseUrl string `yaml:"base_url"`
	ApiKey  string `yaml:"api_key"`
}

type ObjectStorage struct {
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	Token    string `yaml:"token"`
}

func (c *Config) Environment() string {
	if c.Public.Environment == "" {
		return "development"
	}
	return c.Public.Environment
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
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.RateLimit.WindowSeconds == 0 {
		c.Public.RateLimit.WindowSeconds = 60
	}
	if c.Public.RateLimit.Capacity == 0 {
		c.Public.RateLimit.Capacity = 10
	}
	if c.Public.RateLimit.TimeoutSeconds == 0 {
		c.Public.RateLimit.TimeoutSeconds = 2
	}
	if c.Public.Cache.TTLSeconds == 0 {
		c.Public.Cache.TTLSeconds = 60
	}
	if c.Public.Upload.MaxFileSizeBytes == 0 {
		c.Public.Upload.MaxFileSizeBytes = 5 << 20
	}
	if c.Public.Upload.MaxFiles == 0 {
		c.Public.Upload.MaxFiles = 3
	}
	if len(c.Public.Upload.AllowedMimeTypes) == 0 {
		c.Public.Upload.AllowedMimeTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	}
	if c.Public.Http.Port == 0 {
		c.Public.Http.Port = 8080
	}
}
