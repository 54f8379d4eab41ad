package main

import (
	"scriptgen/internal/runtime"
	"scriptgen/logger"

	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动网页服务（默认命令）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		logger.Error("加载配置失败", logger.Err(err))
		return err
	}

	application, err := runtime.New(runtime.Options{Config: cfg})
	if err != nil {
		logger.Error("应用初始化失败", logger.Err(err))
		return err
	}

	if err := application.Run(cmd.Context()); err != nil {
		logger.Error("服务器运行失败", logger.Err(err))
		return err
	}
	return nil
}
