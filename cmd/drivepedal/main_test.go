package main

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/dsp/oversample"
	"github.com/cwbudde/algo-drive/internal/testutil"
	"github.com/cwbudde/algo-drive/internal/wavio"
)

func testGlobals() (*Globals, *bytes.Buffer) {
	var out bytes.Buffer
	return &Globals{out: &out, logger: slog.New(slog.DiscardHandler)}, &out
}

func writeTone(t *testing.T, channels int) string {
	t.Helper()

	a := &wavio.Audio{SampleRate: 48000, BitDepth: 24}
	for range channels {
		a.Channels = append(a.Channels, testutil.DeterministicSine(440, 48000, 0.5, 4800))
	}

	path := filepath.Join(t.TempDir(), "in.wav")
	if err := wavio.WriteFile(path, a); err != nil {
		t.Fatal(err)
	}

	return path
}

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()

	var c CLI

	parser, err := kong.New(&c, kong.Name("drivepedal"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}

	return &c
}

func TestParseFlagsAndEnv(t *testing.T) {
	in := writeTone(t, 1)
	t.Setenv("DRIVEPEDAL_TONE", "1.2")

	c := parse(t, "render", "--drive", "18", "--filter", "fir", in, "out.wav")

	r := c.Render
	if r.Drive == nil || *r.Drive != 18 {
		t.Fatalf("Drive = %v, want 18", r.Drive)
	}
	if r.Tone == nil || *r.Tone != 1.2 {
		t.Fatalf("Tone = %v, want 1.2 from the environment", r.Tone)
	}
	if r.Level != nil || r.Bypass != nil {
		t.Fatal("unset knobs must stay nil")
	}
	if r.Filter != "fir" || r.Oversampling != 2 || r.BlockSize != 512 {
		t.Fatalf("filter=%q stages=%d block=%d", r.Filter, r.Oversampling, r.BlockSize)
	}
	if c.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", c.LogLevel)
	}
}

func TestRenderWithStateAndAutomation(t *testing.T) {
	g, out := testGlobals()
	dir := t.TempDir()
	in := writeTone(t, 2)

	script := filepath.Join(dir, "ramp.lua")
	if err := os.WriteFile(script, []byte(`function automate(block) set("DRIVE", block) end`), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := RenderCmd{
		ProcessorFlags: ProcessorFlags{BlockSize: 480, Oversampling: 2, Filter: "iir"},
		In:             in,
		Out:            filepath.Join(dir, "out.wav"),
		SaveState:      filepath.Join(dir, "preset.drv"),
		Automation:     script,
		Dither:         true,
	}

	if err := cmd.Run(g); err != nil {
		t.Fatal(err)
	}

	res, err := wavio.ReadFile(cmd.Out)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Channels) != 2 || res.Frames() != 4800 || res.BitDepth != 24 {
		t.Fatalf("output: %d channels, %d frames, %d bits", len(res.Channels), res.Frames(), res.BitDepth)
	}

	if testutil.Peak(res.Channels[0]) == 0 {
		t.Fatal("output is silent")
	}

	// Ten blocks of 480 frames: the last automate call sets DRIVE to 9.
	dump := StateDumpCmd{File: cmd.SaveState}
	if err := dump.Run(g); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "DRIVE") || !strings.Contains(out.String(), " 9 ") {
		t.Fatalf("dump output:\n%s", out.String())
	}
}

func TestFlagsOverrideState(t *testing.T) {
	g, _ := testGlobals()

	seed, err := drive.NewProcessor()
	if err != nil {
		t.Fatal(err)
	}
	_ = seed.Params().Set(drive.ParamDrive, 3)
	_ = seed.Params().Set(drive.ParamTone, 0.5)

	data, err := seed.SaveState()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "preset.drv")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	tone, bypass := 1.4, true
	flags := ProcessorFlags{BlockSize: 64, Oversampling: 1, Filter: "fir", State: path, Tone: &tone, Bypass: &bypass}

	p, err := flags.newProcessor(g, drive.Mono, 44100)
	if err != nil {
		t.Fatal(err)
	}

	params := p.Params()
	if params.Get(drive.ParamDrive) != 3 || params.Get(drive.ParamTone) != 1.4 || params.Get(drive.ParamBypass) != 1 {
		t.Fatalf("drive=%v tone=%v bypass=%v", params.Get(drive.ParamDrive), params.Get(drive.ParamTone), params.Get(drive.ParamBypass))
	}

	if p.OversamplingFactor() != 2 || p.MaxBlockSize() != 64 || p.SampleRate() != 44100 {
		t.Fatal("processor configuration does not follow the flags")
	}
}

func TestRenderRejectsBadState(t *testing.T) {
	g, _ := testGlobals()
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.drv")
	if err := os.WriteFile(bad, []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := RenderCmd{
		ProcessorFlags: ProcessorFlags{BlockSize: 64, Oversampling: 2, Filter: "iir", State: bad},
		In:             writeTone(t, 1),
		Out:            filepath.Join(dir, "out.wav"),
	}

	if err := cmd.Run(g); err == nil {
		t.Fatal("render accepted a corrupt state file")
	}

	if _, err := os.Stat(cmd.Out); !os.IsNotExist(err) {
		t.Fatal("output written despite the error")
	}
}

func TestAnalyzeShowsAliasReduction(t *testing.T) {
	g, out := testGlobals()

	cmd := AnalyzeCmd{
		Rate:         48000,
		Size:         4096,
		Bin:          88,
		Amplitude:    0.5,
		Drives:       []float64{0, 24},
		Oversampling: 2,
		Filter:       "iir",
	}

	rows, err := cmd.measure(g, oversample.FilterHalfBandPolyphaseIIR)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d", len(rows))
	}

	hot := rows[1]
	if hot.AliasOver >= hot.AliasPlain {
		t.Fatalf("alias %.3g with oversampling, %.3g without", hot.AliasOver, hot.AliasPlain)
	}
	if hot.THD <= 0.01 {
		t.Fatalf("THD at full drive = %.3g, want audible distortion", hot.THD)
	}

	if err := cmd.Run(g); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"alias 4x", "Oversampling latency", "1031.25 Hz"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestLatencyMatchesOversampler(t *testing.T) {
	got, err := oversamplerLatency(2, oversample.FilterHalfBandFIR)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got-38.5) > 1e-12 {
		t.Fatalf("latency = %v, want 38.5", got)
	}

	if _, err := oversamplerLatency(oversample.MaxStages+1, oversample.FilterHalfBandFIR); err == nil {
		t.Fatal("too many stages accepted")
	}
}

func TestLayoutFor(t *testing.T) {
	if l, err := layoutFor(1); err != nil || l != drive.Mono {
		t.Fatalf("1 channel: %v, %v", l, err)
	}
	if l, err := layoutFor(2); err != nil || l != drive.Stereo {
		t.Fatalf("2 channels: %v, %v", l, err)
	}
	if _, err := layoutFor(6); err == nil {
		t.Fatal("6 channels accepted")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("log output: %q", buf.String())
	}

	if _, err := newLogger(&buf, "loud"); err == nil {
		t.Fatal("bad level accepted")
	}
}
