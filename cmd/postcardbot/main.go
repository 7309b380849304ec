package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/backostech/postcardbot/bot"
	"github.com/backostech/postcardbot/core/bootstrap"
	"github.com/backostech/postcardbot/core/cmd"
)

func main() {
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := carrier.(*bot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.CoreConfig(),
				Database: cfg.Database,
			})
			if err != nil {
				return nil, err
			}
			return bot.NewApp(cfg, res.Store), nil
		},
	})
	if err != nil {
		log.Fatalf("postcardbot: %v", err)
	}
}
