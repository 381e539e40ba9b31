// internal/config/config.go
package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "sqlite" または "postgres"
	URL    string `mapstructure:"url"`
}

// OpenAIConfig はカード生成に使うチャット補完APIの設定
type OpenAIConfig struct {
	APIKey                string        `mapstructure:"api_key"`
	BaseURL               string        `mapstructure:"base_url"` // 空なら公式エンドポイント
	Model                 string        `mapstructure:"model"`
	Timeout               time.Duration `mapstructure:"timeout"`
	GenerateTemperature   float32       `mapstructure:"generate_temperature"`
	RegenerateTemperature float32       `mapstructure:"regenerate_temperature"`
}

// DeckConfig はデッキ生成とスナップショット保存の設定
type DeckConfig struct {
	MinCards     int    `mapstructure:"min_cards"`
	MaxCards     int    `mapstructure:"max_cards"`
	DefaultCards int    `mapstructure:"default_cards"`
	SnapshotKey  string `mapstructure:"snapshot_key"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Deck     DeckConfig     `mapstructure:"deck"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_SERVER_PORT のように接頭辞付きの環境変数で上書きできる
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	// よく使われる名前の環境変数はそのまま紐付ける
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("server.port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("OpenAI Model: %s", Cfg.OpenAI.Model)
	log.Printf("Deck Size: %d-%d (default %d)", Cfg.Deck.MinCards, Cfg.Deck.MaxCards, Cfg.Deck.DefaultCards)

	return nil
}

// applyDefaults は未設定の項目にデフォルト値を入れる
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	// PORT=3001 のようにコロン無しで渡された場合
	if cfg.Server.Port[0] != ':' {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "X-Request-Id"}
	}
	if cfg.Database.Driver == "" {
		log.Printf("Database driver not set, using default '%s'", DefaultDatabaseDriver)
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.URL == "" && cfg.Database.Driver == DefaultDatabaseDriver {
		log.Printf("Database URL not set, using default '%s'", DefaultSQLitePath)
		cfg.Database.URL = DefaultSQLitePath
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = DefaultOpenAIModel
	}
	if cfg.OpenAI.Timeout <= 0 {
		cfg.OpenAI.Timeout = DefaultOpenAITimeout
	}
	if cfg.OpenAI.GenerateTemperature <= 0 {
		cfg.OpenAI.GenerateTemperature = DefaultGenerateTemperature
	}
	if cfg.OpenAI.RegenerateTemperature <= 0 {
		cfg.OpenAI.RegenerateTemperature = DefaultRegenerateTemperature
	}
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OpenAI API key is not set. Card generation will fail.")
	}
	if cfg.Deck.MinCards <= 0 {
		cfg.Deck.MinCards = DefaultMinCards
	}
	if cfg.Deck.MaxCards < cfg.Deck.MinCards {
		cfg.Deck.MaxCards = DefaultMaxCards
	}
	if cfg.Deck.DefaultCards <= 0 {
		cfg.Deck.DefaultCards = DefaultCardCount
	}
	if cfg.Deck.SnapshotKey == "" {
		cfg.Deck.SnapshotKey = DefaultSnapshotKey
	}
}
