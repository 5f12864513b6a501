// Copyright (c) 2026, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package rfconv_main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"
	"github.com/spf13/viper"

	"github.com/openthread/ot-rfconv/cli"
)

// Config holds the settings that can come from the optional rfconv.yaml file.
type Config struct {
	LogLevel  string `mapstructure:"log"`
	Precision int    `mapstructure:"precision"`
	History   string `mapstructure:"history"`
}

// loadConfig reads the config file at path, or searches rfconv.yaml in $HOME/.config/rfconv and
// the working directory when path is empty. A missing file is only an error when path is given.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log", "warn")
	v.SetDefault("precision", cli.DefaultPrecision)
	v.SetDefault("history", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rfconv")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "rfconv"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		simplelogger.Debugf("no config file found, using defaults")
	} else {
		simplelogger.Debugf("using config file %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// mergeConfig fills the arguments not given on the command line from cfg.
func mergeConfig(args *MainArgs, cfg *Config, explicit map[string]bool) {
	if !explicit["log"] {
		args.LogLevel = cfg.LogLevel
	}
	if !explicit["precision"] {
		args.Precision = cfg.Precision
	}
	if !explicit["history"] {
		args.HistoryFile = cfg.History
	}
}
