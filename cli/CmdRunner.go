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
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openthread/ot-rfconv/budget"
	"github.com/openthread/ot-rfconv/constants"
	"github.com/openthread/ot-rfconv/frequency"
	"github.com/openthread/ot-rfconv/logger"
	"github.com/openthread/ot-rfconv/noise"
	"github.com/openthread/ot-rfconv/p1db"
	"github.com/openthread/ot-rfconv/pathloss"
	"github.com/openthread/ot-rfconv/power"
	"github.com/openthread/ot-rfconv/progctx"
)

const (
	Prompt           = "> "
	DefaultPrecision = 6
	MaxPrecision     = 17
)

var (
	powerUnitNames = map[string]string{"w": "W", "mw": "mW", "dbm": "dBm", "dbw": "dBW"}
	powerUnits     = []string{"dbm", "dbw", "w", "mw"}

	powerConversions = map[[2]string]func(float64) float64{
		{"w", "mw"}:    func(w float64) float64 { return w * 1000 },
		{"w", "dbm"}:   power.WattsToDbm,
		{"w", "dbw"}:   power.WattsToDbw,
		{"mw", "w"}:    func(mw float64) float64 { return mw / 1000 },
		{"mw", "dbm"}:  power.MilliwattsToDbm,
		{"mw", "dbw"}:  power.MilliwattsToDbw,
		{"dbm", "w"}:   power.DbmToWatts,
		{"dbm", "mw"}:  power.DbmToMilliwatts,
		{"dbm", "dbw"}: power.DbmToDbw,
		{"dbw", "w"}:   power.DbwToWatts,
		{"dbw", "mw"}:  power.DbwToMilliwatts,
		{"dbw", "dbm"}: power.DbwToDbm,
	}
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

// outputValue prints a value with its unit at the precision of the runner.
func (cc *CommandContext) outputValue(label string, v float64, unit string) {
	s := cc.rt.format(v)
	if unit != "" {
		s += " " + unit
	}
	if label != "" {
		s = fmt.Sprintf("%-7s %s", label, s)
	}
	cc.outputf("%s\n", s)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

// outputAsYaml prints v in block style, with every element of the sequence under flowKey
// on a single line.
func (cc *CommandContext) outputAsYaml(v interface{}, flowKey string) {
	var node yaml.Node

	err := node.Encode(v)
	logger.PanicIfError(err)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == flowKey {
			for _, item := range node.Content[i+1].Content {
				item.Style = yaml.FlowStyle
			}
		}
	}

	data, err := yaml.Marshal(&node)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner parses and executes calculator commands.
type CmdRunner struct {
	ctx       *progctx.ProgCtx
	precision int
	help      Help
}

func NewCmdRunner(ctx *progctx.ProgCtx) *CmdRunner {
	return &CmdRunner{
		ctx:       ctx,
		precision: DefaultPrecision,
		help:      newHelp(),
	}
}

// SetPrecision sets the number of significant digits of printed values.
func (rt *CmdRunner) SetPrecision(digits int) error {
	if digits < 1 || digits > MaxPrecision {
		return errors.Errorf("precision must be between 1 and %d, got %d", MaxPrecision, digits)
	}
	rt.precision = digits
	return nil
}

func (rt *CmdRunner) GetPrecision() int {
	return rt.precision
}

// RunCommand parses and executes one command line, writing the result to output. It returns a
// non-nil error once the program context is done.
func (rt *CmdRunner) RunCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	return rt.RunCommand(cmdline, output)
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) format(v float64) string {
	return strconv.FormatFloat(v, 'g', rt.precision, 64)
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Power != nil {
		rt.executePower(cc, cmd.Power)
	} else if cmd.Ratio != nil {
		rt.executeRatio(cc, cmd.Ratio)
	} else if cmd.Sum != nil {
		rt.executeSum(cc, cmd.Sum)
	} else if cmd.Freq != nil {
		rt.executeFreq(cc, cmd.Freq)
	} else if cmd.Noise != nil {
		rt.executeNoise(cc, cmd.Noise)
	} else if cmd.Passive != nil {
		rt.executePassive(cc, cmd.Passive)
	} else if cmd.PathLoss != nil {
		rt.executePathLoss(cc, cmd.PathLoss)
	} else if cmd.Ktb != nil {
		rt.executeKtb(cc, cmd.Ktb)
	} else if cmd.N0 != nil {
		rt.executeN0(cc, cmd.N0)
	} else if cmd.Gt != nil {
		rt.executeGt(cc, cmd.Gt)
	} else if cmd.P1db != nil {
		rt.executeP1db(cc, cmd.P1db)
	} else if cmd.Cascade != nil {
		rt.executeCascade(cc, cmd.Cascade)
	} else if cmd.Budget != nil {
		rt.executeBudget(cc, cmd.Budget)
	} else if cmd.Precision != nil {
		rt.executePrecision(cc, cmd.Precision)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executePower(cc *CommandContext, cmd *PowerCmd) {
	value := float64(cmd.Value)
	if cmd.To != nil {
		to := string(*cmd.To)
		cc.outputValue("", convertPower(value, string(cmd.From), to), powerUnitNames[to])
		return
	}
	for _, unit := range powerUnits {
		cc.outputValue("", convertPower(value, string(cmd.From), unit), powerUnitNames[unit])
	}
}

func convertPower(value float64, from string, to string) float64 {
	if from == to {
		return value
	}
	conv, ok := powerConversions[[2]string{from, to}]
	logger.AssertTrue(ok, "no power conversion %s to %s", from, to)
	return conv(value)
}

func (rt *CmdRunner) executeRatio(cc *CommandContext, cmd *RatioCmd) {
	if cmd.From == "db" {
		cc.outputValue("", power.DbToLinear(float64(cmd.Value)), "")
	} else {
		cc.outputValue("", power.LinearToDb(float64(cmd.Value)), "dB")
	}
}

func (rt *CmdRunner) executeSum(cc *CommandContext, cmd *SumCmd) {
	total := float64(cmd.Powers[0].Value)
	for _, p := range cmd.Powers[1:] {
		total = power.AddDbm(total, float64(p.Value))
	}
	cc.outputValue("", total, "dBm")
}

func (rt *CmdRunner) executeFreq(cc *CommandContext, cmd *FreqCmd) {
	value := float64(cmd.Value)
	if cmd.From == "m" {
		hz := frequency.FromWavelength(value)
		if cmd.To != nil {
			if *cmd.To == "m" {
				cc.outputValue("", value, "m")
			} else {
				to := mustParseFreqUnit(string(*cmd.To))
				cc.outputValue("", frequency.Convert(hz, frequency.Hz, to), to.String())
			}
			return
		}
		for _, u := range frequency.Units {
			cc.outputValue("", frequency.Convert(hz, frequency.Hz, u), u.String())
		}
		return
	}

	from := mustParseFreqUnit(string(cmd.From))
	hz := frequency.Convert(value, from, frequency.Hz)
	if cmd.To != nil {
		if *cmd.To == "m" {
			cc.outputValue("", frequency.ToWavelength(hz), "m")
		} else {
			to := mustParseFreqUnit(string(*cmd.To))
			cc.outputValue("", frequency.Convert(value, from, to), to.String())
		}
		return
	}
	for _, u := range frequency.Units {
		cc.outputValue("", frequency.Convert(value, from, u), u.String())
	}
	cc.outputValue("", frequency.ToWavelength(hz), "m")
}

func mustParseFreqUnit(s string) frequency.Unit {
	u, ok := frequency.ParseUnit(s)
	logger.AssertTrue(ok, "unknown frequency unit %s", s)
	return u
}

func (rt *CmdRunner) executeNoise(cc *CommandContext, cmd *NoiseCmd) {
	value := float64(cmd.Value)
	switch cmd.From {
	case "db":
		rt.outputNoise(cc, value, noise.FactorFromFigure(value), noise.TemperatureFromFigure(value))
	case "factor":
		rt.outputNoise(cc, noise.FigureFromFactor(value), value, noise.TemperatureFromFactor(value))
	case "k":
		rt.outputNoise(cc, noise.FigureFromTemperature(value), noise.FactorFromTemperature(value), value)
	}
}

func (rt *CmdRunner) outputNoise(cc *CommandContext, figure float64, factor float64, temperature float64) {
	cc.outputValue("nf", figure, "dB")
	cc.outputValue("factor", factor, "")
	cc.outputValue("te", temperature, "K")
}

func (rt *CmdRunner) executePassive(cc *CommandContext, cmd *PassiveCmd) {
	temperature := constants.ReferenceTemperature
	if cmd.Temperature != nil {
		temperature = float64(*cmd.Temperature)
	}
	if temperature < 0 {
		cc.errorf("temperature must not be negative, got %v", temperature)
		return
	}

	gain := power.DbToLinear(-math.Abs(float64(cmd.Loss)))
	factor := noise.PassiveFactor(gain, temperature)
	rt.outputNoise(cc, noise.FigureFromFactor(factor), factor, noise.TemperatureFromFactor(factor))
}

func (rt *CmdRunner) executePathLoss(cc *CommandContext, cmd *PathLossCmd) {
	name := cmd.Model
	if name == "" {
		name = "fspl"
	}
	if cmd.Unit == "m" {
		cc.errorf("pathloss needs a frequency unit, got m")
		return
	}
	hz := frequency.Convert(float64(cmd.Freq), mustParseFreqUnit(string(cmd.Unit)), frequency.Hz)

	model, err := pathloss.NewModel(name, hz)
	if err != nil {
		cc.error(err)
		return
	}
	distance := float64(cmd.Distance)
	if distance < 0 {
		cc.errorf("distance must not be negative, got %v", distance)
		return
	}

	cc.outputValue("loss", model.Loss(distance), "dB")
	if cmd.TxPower != nil {
		cc.outputValue("rssi", model.Rssi(float64(*cmd.TxPower), distance), "dBm")
	}
}

func (rt *CmdRunner) executeKtb(cc *CommandContext, cmd *KtbCmd) {
	temperature, bandwidth := float64(cmd.Temperature), float64(cmd.Bandwidth)
	cc.outputValue("", noise.PowerFromBandwidth(temperature, bandwidth), "W")
	cc.outputValue("", noise.PowerDbm(temperature, bandwidth), "dBm")
}

func (rt *CmdRunner) executeN0(cc *CommandContext, cmd *N0Cmd) {
	temperature := constants.ReferenceTemperature
	if cmd.Temperature != nil {
		temperature = float64(*cmd.Temperature)
	}
	cc.outputValue("", noise.DensityDbmPerHz(temperature), "dBm/Hz")
}

func (rt *CmdRunner) executeGt(cc *CommandContext, cmd *GtCmd) {
	cc.outputValue("", noise.GOverT(float64(cmd.Gain), float64(cmd.SystemTemperature)), "dB/K")
}

func (rt *CmdRunner) executeP1db(cc *CommandContext, cmd *P1dbCmd) {
	if cmd.Side == "in" {
		cc.outputValue("op1db", p1db.InputToOutputDb(float64(cmd.Value), float64(cmd.Gain)), "dBm")
	} else {
		cc.outputValue("ip1db", p1db.OutputToInputDb(float64(cmd.Value), float64(cmd.Gain)), "dBm")
	}
}

func (rt *CmdRunner) executeCascade(cc *CommandContext, cmd *CascadeCmd) {
	logger.Debugf("cascade %s over %d stages", cmd.Kind, len(cmd.Stages))

	if cmd.Kind == "p1db" {
		stages := make([]p1db.Stage, len(cmd.Stages))
		for i, s := range cmd.Stages {
			stages[i] = p1db.Stage{OutputP1dB: float64(s.Value), Gain: float64(s.Gain)}
		}
		cc.outputValue("op1db", p1db.CascadeOutputChain(stages), "dBm")
		return
	}

	// gains are always given in dB; factor and temperature cascades take them linear.
	stages := make([]noise.Stage, len(cmd.Stages))
	for i, s := range cmd.Stages {
		stages[i] = noise.Stage{Noise: float64(s.Value), Gain: float64(s.Gain)}
		if cmd.Kind != "nf" {
			stages[i].Gain = power.DbToLinear(stages[i].Gain)
		}
	}
	switch cmd.Kind {
	case "nf":
		cc.outputValue("nf", noise.CascadeFigure(stages), "dB")
	case "factor":
		cc.outputValue("factor", noise.CascadeFactor(stages), "")
	case "temp":
		cc.outputValue("te", noise.CascadeTemperature(stages), "K")
	}
}

func (rt *CmdRunner) executeBudget(cc *CommandContext, cmd *BudgetCmd) {
	chain, err := budget.LoadChain(unquote(cmd.Path))
	if err != nil {
		cc.error(err)
		return
	}

	report, err := budget.Analyze(chain)
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputAsYaml(report, "stages")
}

func (rt *CmdRunner) executePrecision(cc *CommandContext, cmd *PrecisionCmd) {
	if cmd.Digits == nil {
		cc.outputf("%d\n", rt.precision)
		return
	}
	cc.error(rt.SetPrecision(*cmd.Digits))
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}

	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	rt.ctx.Cancel("exit")
}
