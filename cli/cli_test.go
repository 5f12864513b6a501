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

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openthread/ot-rfconv/logger"
	"github.com/openthread/ot-rfconv/progctx"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	assert.Nil(t, parseBytes([]byte("power 1 w dbm"), &cmd))
	assert.True(t, cmd.Power != nil && cmd.Power.Value == 1 && cmd.Power.From == "w" && *cmd.Power.To == "dbm")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("power -30.5 dbm"), &cmd))
	assert.True(t, cmd.Power != nil && cmd.Power.Value == -30.5 && cmd.Power.To == nil)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("power 2.5e-3 mw dbw"), &cmd))
	assert.Equal(t, Number(2.5e-3), cmd.Power.Value)
	assert.NotNil(t, parseBytes([]byte("power 1 volt"), &cmd))
	assert.NotNil(t, parseBytes([]byte("power dbm"), &cmd))

	assert.True(t, parseBytes([]byte("ratio 3 db"), &cmd) == nil && cmd.Ratio != nil)
	assert.True(t, parseBytes([]byte("ratio 1000 lin"), &cmd) == nil && cmd.Ratio != nil)
	assert.True(t, parseBytes([]byte("sum 0 -3 10"), &cmd) == nil && len(cmd.Sum.Powers) == 3)
	assert.NotNil(t, parseBytes([]byte("sum"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("freq 12.5 ghz"), &cmd))
	assert.True(t, cmd.Freq != nil && cmd.Freq.To == nil)
	assert.True(t, parseBytes([]byte("freq 1e9 hz m"), &cmd) == nil && *cmd.Freq.To == "m")
	assert.True(t, parseBytes([]byte("freq 0.3 m mhz"), &cmd) == nil && cmd.Freq.From == "m")

	assert.True(t, parseBytes([]byte("noise 3 db"), &cmd) == nil && cmd.Noise != nil)
	assert.True(t, parseBytes([]byte("noise 2 factor"), &cmd) == nil && cmd.Noise != nil)
	assert.True(t, parseBytes([]byte("noise 290 k"), &cmd) == nil && cmd.Noise != nil)
	assert.True(t, parseBytes([]byte("passive 1"), &cmd) == nil && cmd.Passive.Temperature == nil)
	assert.True(t, parseBytes([]byte("passive 1 77"), &cmd) == nil && *cmd.Passive.Temperature == 77)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("pathloss 1000 1 ghz"), &cmd))
	assert.True(t, cmd.PathLoss != nil && cmd.PathLoss.Model == "" && cmd.PathLoss.TxPower == nil)
	assert.Nil(t, parseBytes([]byte("pathloss 10 2.4 ghz itu tx -3"), &cmd))
	assert.True(t, cmd.PathLoss.Model == "itu" && *cmd.PathLoss.TxPower == -3)
	assert.NotNil(t, parseBytes([]byte("pathloss 10 2.4 ghz hata"), &cmd))

	assert.True(t, parseBytes([]byte("ktb 290 1e6"), &cmd) == nil && cmd.Ktb != nil)
	assert.True(t, parseBytes([]byte("n0"), &cmd) == nil && cmd.N0 != nil)
	assert.True(t, parseBytes([]byte("n0 50"), &cmd) == nil && *cmd.N0.Temperature == 50)
	assert.True(t, parseBytes([]byte("gt 40 105.5"), &cmd) == nil && cmd.Gt != nil)

	assert.True(t, parseBytes([]byte("p1db in 5 30"), &cmd) == nil && cmd.P1db.Side == "in")
	assert.True(t, parseBytes([]byte("p1db out 34 30"), &cmd) == nil && cmd.P1db.Side == "out")
	assert.NotNil(t, parseBytes([]byte("p1db up 34 30"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("cascade nf 1 15 3 10 6 20"), &cmd))
	assert.Equal(t, 3, len(cmd.Cascade.Stages))
	assert.Equal(t, Number(10), cmd.Cascade.Stages[1].Gain)
	assert.True(t, parseBytes([]byte("cascade p1db 34 30 20 -3"), &cmd) == nil && cmd.Cascade.Kind == "p1db")
	assert.NotNil(t, parseBytes([]byte("cascade nf 1"), &cmd))
	assert.NotNil(t, parseBytes([]byte("cascade nf"), &cmd))

	assert.True(t, parseBytes([]byte("budget \"chain.yaml\""), &cmd) == nil && cmd.Budget != nil)
	assert.Equal(t, "chain.yaml", unquote(cmd.Budget.Path))
	assert.NotNil(t, parseBytes([]byte("budget"), &cmd))

	assert.True(t, parseBytes([]byte("precision"), &cmd) == nil && cmd.Precision.Digits == nil)
	assert.True(t, parseBytes([]byte("precision 10"), &cmd) == nil && *cmd.Precision.Digits == 10)
	assert.True(t, parseBytes([]byte("log"), &cmd) == nil && cmd.LogLevel != nil)
	assert.True(t, parseBytes([]byte("log debug"), &cmd) == nil && cmd.LogLevel.Level == "debug")
	assert.NotNil(t, parseBytes([]byte("log loud"), &cmd))
	assert.True(t, parseBytes([]byte("help"), &cmd) == nil && cmd.Help != nil)
	assert.True(t, parseBytes([]byte("help power"), &cmd) == nil && cmd.Help.HelpTopic == "power")
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "a b.yaml", unquote(`"a b.yaml"`))
	assert.Equal(t, "plain", unquote("plain"))
	assert.Equal(t, `"`, unquote(`"`))
}

func newTestRunner() *CmdRunner {
	return NewCmdRunner(progctx.New(context.Background()))
}

func runCommand(t *testing.T, rt *CmdRunner, cmdline string) string {
	var out bytes.Buffer
	assert.Nil(t, rt.RunCommand(cmdline, &out))
	return out.String()
}

func TestRunCommand(t *testing.T) {
	rt := newTestRunner()

	assert.Equal(t, "30 dBm\nDone\n", runCommand(t, rt, "power 1 w dbm"))
	assert.Equal(t, "30 dBm\n0 dBW\n1 W\n1000 mW\nDone\n", runCommand(t, rt, "power 30 dbm"))
	assert.Equal(t, "1e-06 W\nDone\n", runCommand(t, rt, "power -30 dbm w"))
	assert.Equal(t, "1000\nDone\n", runCommand(t, rt, "ratio 30 db"))
	assert.Equal(t, "3.0103 dBm\nDone\n", runCommand(t, rt, "sum 0 0"))
	assert.Equal(t, "10 dBm\nDone\n", runCommand(t, rt, "sum 10"))
	assert.Equal(t, "0.299792 m\nDone\n", runCommand(t, rt, "freq 1 ghz m"))
	assert.Equal(t, "1000 MHz\nDone\n", runCommand(t, rt, "freq 1 ghz mhz"))
	assert.Equal(t, "op1db   34 dBm\nDone\n", runCommand(t, rt, "p1db in 5 30"))
	assert.Equal(t, "ip1db   5 dBm\nDone\n", runCommand(t, rt, "p1db out 34 30"))
	assert.Equal(t, "op1db   3.89226 dBm\nDone\n", runCommand(t, rt, "cascade p1db 34 30 20 30"))
	assert.Equal(t, "nf      1.13885 dB\nDone\n", runCommand(t, rt, "cascade nf 1 15 3 10 6 20"))
	assert.Equal(t, "-173.975 dBm/Hz\nDone\n", runCommand(t, rt, "n0"))
	assert.Equal(t, "19.7667 dB/K\nDone\n", runCommand(t, rt, "gt 40 105.52"))

	assert.Equal(t, "loss    92.4478 dB\nDone\n", runCommand(t, rt, "pathloss 1000 1 ghz"))
	assert.Equal(t, "loss    69.6042 dB\nrssi    -69.6042 dBm\nDone\n", runCommand(t, rt, "pathloss 10 2.4 ghz itu tx 0"))

	out := runCommand(t, rt, "noise 3 db")
	assert.Contains(t, out, "factor  1.99526\n")
	assert.Contains(t, out, "te      288.626 K\n")

	out = runCommand(t, rt, "freq 12.5 ghz")
	assert.Contains(t, out, "12500 MHz\n")
	assert.Contains(t, out, "0.0239834 m\n")

	out = runCommand(t, rt, "passive 1 77")
	assert.Contains(t, out, "nf      0.288758 dB\n")
}

func TestRunCommandErrors(t *testing.T) {
	rt := newTestRunner()

	out := runCommand(t, rt, "wrongcmd")
	assert.True(t, strings.HasPrefix(out, "Error: "))
	assert.NotContains(t, out, "Done")

	out = runCommand(t, rt, "passive 1 -5")
	assert.True(t, strings.HasPrefix(out, "Error: "))

	out = runCommand(t, rt, "pathloss -1 1 ghz")
	assert.True(t, strings.HasPrefix(out, "Error: "))

	out = runCommand(t, rt, "precision 40")
	assert.True(t, strings.HasPrefix(out, "Error: "))
	assert.Equal(t, DefaultPrecision, rt.GetPrecision())
}

func TestMixedCaseUnits(t *testing.T) {
	var cmd Command
	assert.Nil(t, parseBytes([]byte("power 1 W dBm"), &cmd))
	assert.True(t, cmd.Power.From == "w" && *cmd.Power.To == "dbm")
	assert.Nil(t, parseBytes([]byte("freq 2.4 GHz MHz"), &cmd))
	assert.True(t, cmd.Freq.From == "ghz" && *cmd.Freq.To == "mhz")
	assert.Nil(t, parseBytes([]byte("pathloss 10 2.4 GHz"), &cmd))
	assert.Equal(t, FreqUnit("ghz"), cmd.PathLoss.Unit)
	assert.NotNil(t, parseBytes([]byte("freq 2.4 Gig"), &cmd))

	rt := newTestRunner()
	assert.Equal(t, "30 dBm\nDone\n", runCommand(t, rt, "power 1 W dBm"))
	assert.Equal(t, "2400 MHz\nDone\n", runCommand(t, rt, "freq 2.4 GHz MHz"))
	assert.Equal(t, "1000\nDone\n", runCommand(t, rt, "ratio 30 dB"))
	assert.Equal(t, "loss    92.4478 dB\nDone\n", runCommand(t, rt, "pathloss 1000 1 GHz"))

	out := runCommand(t, rt, "pathloss 1000 1 m")
	assert.True(t, strings.HasPrefix(out, "Error: "))
}

func TestPrecision(t *testing.T) {
	rt := newTestRunner()

	assert.Equal(t, "6\nDone\n", runCommand(t, rt, "precision"))
	assert.Equal(t, "Done\n", runCommand(t, rt, "precision 3"))
	assert.Equal(t, "1.2 dB\nDone\n", runCommand(t, rt, "ratio 1.318256738556407 lin"))
	assert.Equal(t, "0.3 m\nDone\n", runCommand(t, rt, "freq 1 ghz m"))
	assert.NotNil(t, rt.SetPrecision(0))
	assert.Nil(t, rt.SetPrecision(MaxPrecision))
}

func TestLogLevelCommand(t *testing.T) {
	defer logger.SetLevel(logger.GetLevel())
	rt := newTestRunner()

	assert.Equal(t, "Done\n", runCommand(t, rt, "log debug"))
	assert.Equal(t, logger.DebugLevel, logger.GetLevel())
	assert.Equal(t, "debug\nDone\n", runCommand(t, rt, "log"))
}

func TestHelpCommand(t *testing.T) {
	rt := newTestRunner()

	out := runCommand(t, rt, "help")
	for _, c := range []string{"budget", "cascade", "freq", "noise", "p1db", "power", "sum"} {
		assert.Contains(t, out, c)
	}
	out = runCommand(t, rt, "help power")
	assert.True(t, strings.HasPrefix(out, "power\n"))
	assert.Contains(t, out, "Definition:")
	assert.Contains(t, runCommand(t, rt, "help nothing"), "Non-existent command")
}

func TestExitCommand(t *testing.T) {
	rt := newTestRunner()

	var out bytes.Buffer
	assert.Equal(t, context.Canceled, rt.RunCommand("exit", &out))
	assert.Equal(t, "Done\n", out.String())

	out.Reset()
	assert.Equal(t, context.Canceled, rt.RunCommand("power 1 w dbm", &out))
	assert.Equal(t, "", out.String())
	assert.Equal(t, "exit", rt.ctx.Cause())
}
