package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer ServerConfigs    `toml:"api_server"`
	Database  DatabaseConfigs  `toml:"database"`
	Redis     RedisConfigs     `toml:"redis"`
	Auth      AuthConfigs      `toml:"auth"`
	DailyTask DailyTaskConfigs `toml:"daily_task"`
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`

	AllowCORS []string `toml:"allow_cors"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type DailyTaskConfigs struct {
	// OpenAIAPIKey is the model-service credential. An empty value is a
	// configuration error, not a degraded-service case.
	OpenAIAPIKey string `toml:"openai_api_key"`

	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}
