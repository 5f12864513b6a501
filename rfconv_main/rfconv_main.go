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

// Package rfconv_main runs the rfconv calculator: it parses flags and the config file, then runs
// a single command or the interactive CLI.
package rfconv_main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"

	"github.com/openthread/ot-rfconv/cli"
	"github.com/openthread/ot-rfconv/logger"
	"github.com/openthread/ot-rfconv/progctx"
)

type MainArgs struct {
	LogLevel    string
	ConfigFile  string
	Precision   int
	HistoryFile string
	Exec        string
}

// parseArgs parses the command line and reports which flags were given explicitly.
func parseArgs(argv []string) (*MainArgs, map[string]bool, error) {
	args := &MainArgs{}
	fs := flag.NewFlagSet("rfconv", flag.ContinueOnError)
	fs.StringVar(&args.LogLevel, "log", "warn", "set logging level: trace, debug, info, warn, error, off.")
	fs.StringVar(&args.ConfigFile, "config", "", "config file (default: rfconv.yaml in $HOME/.config/rfconv or .)")
	fs.IntVar(&args.Precision, "precision", cli.DefaultPrecision, "significant digits of printed values")
	fs.StringVar(&args.HistoryFile, "history", "", "readline history file")
	fs.StringVar(&args.Exec, "e", "", "execute one command and exit, e.g. -e \"power 1 w dbm\"")
	if err := fs.Parse(argv); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, errors.Errorf("unexpected arguments: %v", fs.Args())
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	return args, explicit, nil
}

// setup applies the arguments to the loggers and creates the command runner.
func setup(ctx *progctx.ProgCtx, args *MainArgs) (*cli.CmdRunner, error) {
	level, err := logger.ParseLevelString(args.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	simplelogger.SetLevel(simpleLoggerLevel(level))

	rt := cli.NewCmdRunner(ctx)
	if err := rt.SetPrecision(args.Precision); err != nil {
		return nil, err
	}
	return rt, nil
}

// simpleLoggerLevel maps a level to the closest level of the process-level logger.
func simpleLoggerLevel(level logger.Level) simplelogger.Level {
	switch {
	case level >= logger.DebugLevel:
		return simplelogger.DebugLevel
	case level == logger.InfoLevel:
		return simplelogger.InfoLevel
	case level == logger.WarnLevel:
		return simplelogger.WarnLevel
	case level == logger.ErrorLevel:
		return simplelogger.ErrorLevel
	default:
		return simplelogger.PanicLevel
	}
}

// Main runs rfconv with the given command line arguments. It returns once the CLI exits or the
// program is cancelled by a signal.
func Main(ctx *progctx.ProgCtx, argv []string, cliOptions *cli.CliOptions) error {
	args, explicit, err := parseArgs(argv)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(args.ConfigFile)
	if err != nil {
		return err
	}
	mergeConfig(args, cfg, explicit)

	rt, err := setup(ctx, args)
	if err != nil {
		return err
	}

	if args.Exec != "" {
		return runOnce(rt, args.Exec, os.Stdout)
	}

	if cliOptions == nil {
		cliOptions = cli.DefaultCliOptions()
	}
	cliOptions.HistoryFile = args.HistoryFile
	logger.SetStdoutCallback(cli.Cli)

	ctx.Defer(func() {
		_ = os.Stdin.Close()
	})
	handleSignals(ctx)

	ctx.Go("cli", func() {
		err := cli.Cli.Run(rt, cliOptions)
		ctx.Cancel(errors.Wrapf(err, "console exit"))
	})

	<-ctx.Done()
	simplelogger.Debugf("waiting for rfconv to stop ...")
	ctx.WaitTimeout(time.Second)

	if err, ok := ctx.Cause().(error); ok {
		return err
	}
	return nil
}

// runOnce executes a single command line and returns an error when it did not end with Done.
func runOnce(rt *cli.CmdRunner, cmdline string, output io.Writer) error {
	var buf bytes.Buffer
	err := rt.RunCommand(cmdline, &buf)
	if _, werr := output.Write(buf.Bytes()); werr != nil {
		return werr
	}
	if err != nil && err != context.Canceled {
		return err
	}
	if !strings.HasSuffix(buf.String(), "Done\n") {
		return errors.Errorf("command failed: %s", cmdline)
	}
	return nil
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	ctx.Go("handleSignals", func() {
		defer signal.Stop(c)
		select {
		case sig := <-c:
			simplelogger.Infof("signal received: %v", sig)
			ctx.Cancel(sig)
		case <-ctx.Done():
		}
	})
}
