package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey        string `yaml:"api_key" env-default:""`
		BotName       string `yaml:"bot_name" env-default:"MerchantBot"`
		AdminUsername string `yaml:"admin_username" env-default:""`
		Enabled       bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	Payment struct {
		InvoiceURL    string `yaml:"invoice_url" env-default:""`
		WithdrawalURL string `yaml:"withdrawal_url" env-default:""`
		TimeoutSec    int    `yaml:"timeout_sec" env-default:"9"`
	} `yaml:"payment"`
	Webhook struct {
		Url        string `yaml:"url" env-default:""`
		Enabled    bool   `yaml:"enabled" env-default:"false"`
		TimeoutSec int    `yaml:"timeout_sec" env-default:"9"`
	} `yaml:"webhook"`
	Orders struct {
		FallbackTag string `yaml:"fallback_tag" env-default:"ManagerApple"`
	} `yaml:"orders"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
