package main

import (
	"fmt"
	"log"
	"os"

	appbot "github.com/m3rciful/filebot/app/bot"
	appconfig "github.com/m3rciful/filebot/app/config"
	"github.com/m3rciful/filebot/core/bootstrap"
	corecmd "github.com/m3rciful/filebot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",

		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return appconfig.Load(path)
		},

		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*appconfig.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}

			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.Core,
				Database: cfg.Database,
			})
			if err != nil {
				return nil, err
			}

			return appbot.New(cfg, res.DB), nil
		},
	})
	if err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}
