package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Static   StaticConfig   `yaml:"static" toml:"static"`
	Template TemplateConfig `yaml:"template" toml:"template"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// ServerConfig はリスナーの設定
type ServerConfig struct {
	Host string `yaml:"host" toml:"host"` // リッスンするホスト
	Port int    `yaml:"port" toml:"port"` // リッスンするポート番号

	Backlog        int `yaml:"backlog" toml:"backlog"`                   // 受け付け待ちキューの長さ
	ReadBufferSize int `yaml:"read_buffer_size" toml:"read_buffer_size"` // 1リクエストで読み込む最大バイト数
}

// StaticConfig は静的ファイル配信の設定
type StaticConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`       // 静的ファイルのルート
	Prefix string `yaml:"prefix" toml:"prefix"` // 静的ファイルとして扱うパスの接頭辞

	// 拡張子から判定できない場合に内容からContent-Typeを推定する
	SniffContent bool `yaml:"sniff_content" toml:"sniff_content"`
}

// TemplateConfig はテンプレートの設定
type TemplateConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // テンプレートのルート
}

// LogConfig はアクセスログの設定
type LogConfig struct {
	File string `yaml:"file" toml:"file"` // アクセスログの出力先
}

// Load は設定を読み込む
// デフォルト値を環境変数で上書きしたものを返す
func Load() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// LoadFile は設定ファイルを読み込む
// 拡張子で形式を判定する (.yaml/.yml または .toml)。
// ファイルにないキーはデフォルト値のまま、環境変数はファイルより優先される。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("YAMLの解析に失敗: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("TOMLの解析に失敗: %w", err)
		}
	default:
		return nil, fmt.Errorf("未対応の設定ファイル形式: %s", ext)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           81,
			Backlog:        5,
			ReadBufferSize: 8192,
		},
		Static: StaticConfig{
			Dir:    "./static",
			Prefix: "/static/",
		},
		Template: TemplateConfig{
			Dir: "./templates",
		},
		Log: LogConfig{
			File: "server.log",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("PORT", cfg.Server.Port)
	cfg.Static.Dir = getEnvOrDefault("STATIC_DIR", cfg.Static.Dir)
	cfg.Template.Dir = getEnvOrDefault("TEMPLATE_DIR", cfg.Template.Dir)
	cfg.Log.File = getEnvOrDefault("LOG_FILE", cfg.Log.File)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// Port 0 はテストでの空きポート割り当てに使う
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.Backlog <= 0 {
		return fmt.Errorf("無効なバックログ: %d", c.Server.Backlog)
	}
	if c.Server.ReadBufferSize <= 0 {
		return fmt.Errorf("無効な読み込みバッファサイズ: %d", c.Server.ReadBufferSize)
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") {
		return fmt.Errorf("静的ファイルの接頭辞は / で始まる必要があります: %q", c.Static.Prefix)
	}
	if c.Static.Dir == "" {
		return fmt.Errorf("静的ファイルのディレクトリが設定されていません")
	}
	if c.Template.Dir == "" {
		return fmt.Errorf("テンプレートのディレクトリが設定されていません")
	}
	if c.Log.File == "" {
		return fmt.Errorf("ログファイルが設定されていません")
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
