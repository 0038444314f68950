// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/paint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config is the merged result of flags, PAINT_* variables and the config
// file.
type config struct {
	LogLevel string   `mapstructure:"log_level"`
	Scene    string   `mapstructure:"scene"`
	Out      string   `mapstructure:"out"`
	Frames   int      `mapstructure:"frames"`
	Backend  string   `mapstructure:"backend"`
	Scale    float64  `mapstructure:"scale"`
	Debug    []string `mapstructure:"debug"`
	NoCache  bool     `mapstructure:"no_cache"`
}

var debugNames = map[string]paint.DebugFlags{
	"repaint": paint.DebugRepaintArea,
	"layers":  paint.DebugLayerHint,
	"focus":   paint.DebugFocusHint,
}

func (c config) debugFlags() (paint.DebugFlags, error) {
	var flags paint.DebugFlags
	for _, name := range c.Debug {
		f, ok := debugNames[strings.TrimSpace(name)]
		if !ok {
			return 0, fmt.Errorf("paintdemo: unknown debug overlay %q", name)
		}
		flags |= f
	}
	return flags, nil
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "paintdemo",
		Short:         "Render element scenes through the incremental paint pipeline.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			var level slog.Level
			if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
				return fmt.Errorf("paintdemo: log level: %w", err)
			}
			h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			paint.SetLogger(slog.New(h))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./paintdemo.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newRenderCmd(v), newBackendsCmd())
	return root
}

// initializeConfig reads the config file and PAINT_* variables into v.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("paintdemo")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PAINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("paintdemo: read config: %w", err)
		}
	}
	return nil
}
