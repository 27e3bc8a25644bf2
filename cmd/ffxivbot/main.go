package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ryan-huber-j/FFXIVBot/app"
	"github.com/ryan-huber-j/FFXIVBot/config"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	cliApp := &cli.App{
		Name:  "ffxivbot",
		Usage: "Free Company professionals competition backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Value: cli.NewStringSlice(".env"),
				Usage: "dotenv files loaded before the configuration",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the bot backend",
				Action: serve,
			},
			{
				Name:  "config",
				Usage: "print the effective configuration",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					if cfg.NATS.NKeySeed != "" {
						cfg.NATS.NKeySeed = "<redacted>"
					}
					out, err := yaml.Marshal(cfg)
					if err != nil {
						return fmt.Errorf("failed to encode config: %w", err)
					}
					_, err = c.App.Writer.Write(out)
					return err
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv(c.StringSlice("env-file")...); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)

	ctx, stop := app.ShutdownContext(context.Background())
	defer stop()

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	runErr := application.Run(ctx)
	logger.Info("Shutting down")
	if err := application.Close(); err != nil {
		logger.Error("Error during shutdown", "error", err)
	}
	return runErr
}
