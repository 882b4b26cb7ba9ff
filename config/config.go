package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Data     DataConfig     `yaml:"data"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	TTSModel  string `yaml:"tts_model"`
	TTSVoice  string `yaml:"tts_voice"`
}

type DataConfig struct {
	Dir            string `yaml:"dir"`
	AudioCacheDir  string `yaml:"audio_cache_dir"`
	VocabularyFile string `yaml:"vocabulary_file"`
	TemplateFile   string `yaml:"template_file"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8001",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/word_cache.db",
		},
		LLM: LLMConfig{
			APIURL:    "https://api.openai.com/v1",
			Model:     "gpt-3.5-turbo",
			MaxTokens: 4096,
			TTSModel:  "tts-1",
			TTSVoice:  "alloy",
		},
		Data: DataConfig{
			Dir:            "./data",
			AudioCacheDir:  "./data/audio_cache",
			VocabularyFile: "./type.txt",
			TemplateFile:   "./word_template.md",
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.APIURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL_NAME"); model != "" {
		config.LLM.Model = model
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if audioDir := os.Getenv("AUDIO_CACHE_DIR"); audioDir != "" {
		config.Data.AudioCacheDir = audioDir
	}
	if vocabFile := os.Getenv("VOCABULARY_FILE"); vocabFile != "" {
		config.Data.VocabularyFile = vocabFile
	}
	if templateFile := os.Getenv("TEMPLATE_FILE"); templateFile != "" {
		config.Data.TemplateFile = templateFile
	}

	if config.Data.AudioCacheDir == "" {
		config.Data.AudioCacheDir = filepath.Join(config.Data.Dir, "audio_cache")
	}

	return config
}
