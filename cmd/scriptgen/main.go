package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scriptgen/internal/config"
	"scriptgen/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// 尝试加载 .env 文件（容器环境下通过环境变量注入配置，无需此文件）
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env 文件不存在，使用环境变量")
	} else {
		logger.Info("已从 .env 文件加载配置")
	}

	logger.Reinitialize()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		logger.Error("命令执行失败", logger.Err(err))
	}
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configFile string
	port       string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "scriptgen",
		Short:         "Roblox Luau script generator",
		Long:          "Describe functionality in plain language and get a Roblox Luau script back.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "可选的 YAML 配置文件")
	root.PersistentFlags().StringVar(&flags.port, "port", "", "监听端口（覆盖 PORT）")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig 读取配置并把日志配置应用到默认logger
func loadConfig(flags *rootFlags) (*config.SystemConfig, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}
	if flags.port != "" {
		cfg.Server.Port = flags.port
	}
	if err := logger.Configure(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}
