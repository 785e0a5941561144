// Package config loads mathplace settings from config.yaml, .env and
// MATHPLACE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/mathplace/internal/llm"
)

// EnvPrefix is prepended to every environment override, e.g.
// MATHPLACE_SERVER_ADDR for server.addr.
const EnvPrefix = "MATHPLACE"

// Config is the top-level configuration.
type Config struct {
	LLM        llm.Config       `mapstructure:"llm"`
	Server     ServerConfig     `mapstructure:"server"`
	Generation GenerationConfig `mapstructure:"generation"`
	Quiz       QuizConfig       `mapstructure:"quiz"`
	Logging    LoggingConfig    `mapstructure:"logging"`

	// DB is the audit log path. Empty means the XDG default.
	DB string `mapstructure:"db"`
}

// ServerConfig configures `mathplace serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RateLimit is the number of generation requests one client may make
	// per RateWindow. Zero disables limiting.
	RateLimit  uint          `mapstructure:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// GenerationConfig controls where learner surfaces get questions from.
type GenerationConfig struct {
	// Endpoint is the base URL of a remote question service. Empty means
	// questions are generated in-process.
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// QuizConfig seeds the settings form.
type QuizConfig struct {
	LowerBound    string   `mapstructure:"lower_bound"`
	UpperBound    string   `mapstructure:"upper_bound"`
	UseSkillsList bool     `mapstructure:"use_skills_list"`
	Skills        []string `mapstructure:"skills"`
}

// LoggingConfig configures the zap logger and its rotating file.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Options tells Load where to look.
type Options struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string
	// EnvFile is the dotenv file to load first. Defaults to ".env";
	// a missing file is not an error.
	EnvFile string
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	for name, cred := range map[string]llm.Credentials{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", cred.APIKey)
		v.SetDefault("llm."+name+".model", cred.Model)
		v.SetDefault("llm."+name+".base_url", cred.BaseURL)
	}
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.rate_window", time.Minute)

	v.SetDefault("generation.endpoint", "")
	v.SetDefault("generation.timeout", d.Timeout)

	v.SetDefault("quiz.lower_bound", "single digit addition")
	v.SetDefault("quiz.upper_bound", "division to 9")
	v.SetDefault("quiz.use_skills_list", false)
	v.SetDefault("quiz.skills", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10) // MB
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7) // days
	v.SetDefault("logging.compress", true)

	v.SetDefault("db", "")
}

// Load reads configuration in increasing priority: defaults, config file,
// environment (after loading the dotenv file). When the selected LLM
// provider has no API key, the well-known vendor variables are probed.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "mathplace"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		if found, ok := llm.Discover(cfg.LLM, os.Getenv); ok {
			cfg.LLM = found
		}
	}

	cfg.Server.AllowOrigins = trimList(cfg.Server.AllowOrigins)
	cfg.Quiz.Skills = trimList(cfg.Quiz.Skills)

	return &cfg, nil
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
