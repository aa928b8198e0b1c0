package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Session      SessionConfig      `mapstructure:"session"`
	S3           S3Config           `mapstructure:"s3"`
	Log          LogConfig          `mapstructure:"log"`
	Redis        RedisConfig        `mapstructure:"redis"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Seed         SeedConfig         `mapstructure:"seed"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	GinMode      string        `mapstructure:"gin_mode"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
	// Upper bound for every single store operation; exceeding it surfaces as "storage unavailable".
	OpTimeout time.Duration `mapstructure:"op_timeout"`
}

// SessionConfig defines the signed session cookie.
type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
	CookieName string        `mapstructure:"cookie_name"`
	Secure     bool          `mapstructure:"secure"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	File     string `mapstructure:"file"`
	JSON     bool   `mapstructure:"json"`
	ToStdout bool   `mapstructure:"to_stdout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

type RateLimitConfig struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
}

type CacheConfig struct {
	SizeMB int           `mapstructure:"size_mb"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// RegistrationConfig holds the product-policy knobs of registration validation.
type RegistrationConfig struct {
	Genders []string `mapstructure:"genders"`
	MinAge  int      `mapstructure:"min_age"` // 0 disables the check; age is then presence-only
}

type SeedConfig struct {
	ExercisesDir  string `mapstructure:"exercises_dir"`
	TemplatesFile string `mapstructure:"templates_file"`
	UploadImages  bool   `mapstructure:"upload_images"`
}

var ErrMissingSessionSecret = errors.New("session.secret must be set")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; defaults and env vars are enough.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if config.Session.Secret == "" {
		return config, ErrMissingSessionSecret
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.gin_mode", "debug")

	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "FitByte")
	v.SetDefault("database.op_timeout", "5s")

	// AutomaticEnv only resolves keys viper already knows about, so the secret needs a default too.
	v.SetDefault("session.secret", "")
	v.SetDefault("session.expiration", "24h")
	v.SetDefault("session.cookie_name", "fitbyte_session")
	v.SetDefault("session.secure", false)

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.use_ssl", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.to_stdout", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")

	v.SetDefault("ratelimit.auth_per_minute", 20)

	v.SetDefault("cache.size_mb", 16)
	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("registration.genders", []string{"male", "female", "other"})
	v.SetDefault("registration.min_age", 0)

	v.SetDefault("seed.exercises_dir", "data/exercises")
	v.SetDefault("seed.templates_file", "data/workout_templates.json")
	v.SetDefault("seed.upload_images", false)
}
