package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
}

type ConfigSchema struct {
	Databases struct {
		Master   DBConfig   `yaml:"master"`
		Replicas []DBConfig `yaml:"replicas"`
	} `yaml:"databases"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Media struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"media"`
	Feed struct {
		PageSize        int `yaml:"page_size"`
		CacheWindowSecs int `yaml:"cache_window_secs"`
	} `yaml:"feed"`
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
}

var AppConfig *ConfigSchema

// PageSize - размер страницы ленты
func (c *ConfigSchema) PageSize() int {
	if c.Feed.PageSize > 0 {
		return c.Feed.PageSize
	}
	return 10
}

// CacheWindow - окно валидности кеша главной ленты
func (c *ConfigSchema) CacheWindow() time.Duration {
	if c.Feed.CacheWindowSecs > 0 {
		return time.Duration(c.Feed.CacheWindowSecs) * time.Second
	}
	return 20 * time.Second
}

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	conf := &ConfigSchema{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return err
	}
	AppConfig = conf
	return nil
}
