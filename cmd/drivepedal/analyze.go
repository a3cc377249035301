package main

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/dsp/oversample"
	"github.com/cwbudde/algo-drive/internal/cli"
	"github.com/cwbudde/algo-drive/internal/host"
	"github.com/cwbudde/algo-drive/measure/thd"
)

// AnalyzeCmd renders a test tone at several drive settings and reports
// harmonic distortion and aliasing with and without oversampling.
type AnalyzeCmd struct {
	Rate         int       `default:"48000" help:"Sample rate in Hz."`
	Size         int       `default:"8192" help:"Analysis length in samples (power of two)."`
	Bin          int       `default:"176" help:"Test tone frequency as an FFT bin index."`
	Amplitude    float64   `default:"0.5" help:"Test tone amplitude."`
	Drives       []float64 `default:"0,6,12,18,24" help:"Drive settings to measure."`
	Oversampling int       `default:"2" env:"DRIVEPEDAL_OVERSAMPLING" help:"Number of 2x oversampling stages [1, 4]."`
	Filter       string    `enum:"iir,fir" default:"iir" env:"DRIVEPEDAL_FILTER" help:"Oversampling filter (${enum})."`
}

// measurement is one analyzed drive setting.
type measurement struct {
	Drive      float64
	PreGainDB  float64
	THD        float64
	AliasPlain float64
	AliasOver  float64
}

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(g *Globals) error {
	filter, err := oversample.ParseFilter(c.Filter)
	if err != nil {
		return err
	}

	rows, err := c.measure(g, filter)
	if err != nil {
		return err
	}

	freq := float64(c.Bin) * float64(c.Rate) / float64(c.Size)
	factor := 1 << c.Oversampling

	cli.PrintTitle(g.out, "Drive pedal analysis")
	cli.PrintKeyValue(g.out, "Tone", fmt.Sprintf("%.2f Hz at %d Hz", freq, c.Rate))

	tbl := cli.Table{Headers: []string{
		"drive", "pre-gain", "THD", "alias 1x", fmt.Sprintf("alias %dx", factor),
	}}
	for _, r := range rows {
		tbl.AddRow(
			fmt.Sprintf("%.2f", r.Drive),
			fmt.Sprintf("%.2f dB", r.PreGainDB),
			fmt.Sprintf("%.2f%%", 100*r.THD),
			fmt.Sprintf("%.1f dB", core.LinearToDB(r.AliasPlain)),
			fmt.Sprintf("%.1f dB", core.LinearToDB(r.AliasOver)),
		)
	}

	fmt.Fprintln(g.out)
	fmt.Fprint(g.out, tbl.String())
	fmt.Fprintln(g.out)

	latency, err := oversamplerLatency(c.Oversampling, filter)
	if err != nil {
		return err
	}

	cli.PrintKeyValue(g.out, "Oversampling latency",
		fmt.Sprintf("%.2f samples (%.3f ms)", latency, 1000*latency/float64(c.Rate)))

	return nil
}

func (c *AnalyzeCmd) measure(g *Globals, filter oversample.Filter) ([]measurement, error) {
	if c.Oversampling < 1 {
		return nil, fmt.Errorf("%w: analyze needs at least one oversampling stage", oversample.ErrInvalidConfig)
	}

	cfg := thd.Config{
		SampleRate:      float64(c.Rate),
		FundamentalFreq: float64(c.Bin) * float64(c.Rate) / float64(c.Size),
	}

	calc, err := thd.NewCalculator(cfg)
	if err != nil {
		return nil, err
	}

	rows := make([]measurement, 0, len(c.Drives))
	for _, d := range c.Drives {
		plain, err := c.renderTone(g, 0, filter, d, cfg.FundamentalFreq)
		if err != nil {
			return nil, err
		}

		over, err := c.renderTone(g, c.Oversampling, filter, d, cfg.FundamentalFreq)
		if err != nil {
			return nil, err
		}

		resPlain, err := calc.AnalyzeSignal(plain)
		if err != nil {
			return nil, err
		}

		resOver, err := calc.AnalyzeSignal(over)
		if err != nil {
			return nil, err
		}

		rows = append(rows, measurement{
			Drive:      d,
			PreGainDB:  drive.PreGainDB(d),
			THD:        resOver.THD,
			AliasPlain: resPlain.Alias,
			AliasOver:  resOver.Alias,
		})
	}

	return rows, nil
}

// renderTone returns the settled last Size samples of a mono tone rendered
// at the given drive.
func (c *AnalyzeCmd) renderTone(g *Globals, stages int, filter oversample.Filter, d, freq float64) ([]float64, error) {
	p, err := drive.NewProcessor(
		drive.WithLayout(drive.Mono),
		drive.WithOversamplingStages(stages),
		drive.WithOversamplingFilter(filter),
		drive.WithLogger(g.logger),
	)
	if err != nil {
		return nil, err
	}

	if err := p.Prepare(float64(c.Rate), 1024); err != nil {
		return nil, err
	}
	defer p.Release()

	if err := p.Params().Set(drive.ParamDrive, d); err != nil {
		return nil, err
	}

	settle := c.Size / 2
	buf := make([]float64, settle+c.Size)

	src := host.NewSineSource(freq, c.Amplitude, float64(c.Rate))
	src.Fill([][]float64{buf})
	p.Process([][]float64{buf})

	return buf[settle:], nil
}

func oversamplerLatency(stages int, filter oversample.Filter) (float64, error) {
	o, err := oversample.New(1, stages, oversample.WithFilter(filter))
	if err != nil {
		return 0, err
	}

	return o.Latency(), nil
}

