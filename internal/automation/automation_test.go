package automation

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/dsp/param"
)

func TestRunWritesParameters(t *testing.T) {
	params := drive.NewParameterSet()

	s, err := Load("ramp", `
function automate(block, time)
  set("DRIVE", block * 2)
  set("TONE", get("TONE") + 0.1)
  set("LEVEL", math.min(time, 2))
end`, params)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for block := range 3 {
		if err := s.Run(block, 0.5*float64(block)); err != nil {
			t.Fatal(err)
		}
	}

	if got := params.Get(drive.ParamDrive); got != 4 {
		t.Errorf("DRIVE = %v, want 4", got)
	}
	if got := params.Get(drive.ParamTone); math.Abs(got-1.1) > 1e-9 {
		t.Errorf("TONE = %v, want 1.1", got)
	}
	if got := params.Get(drive.ParamLevel); got != 1 {
		t.Errorf("LEVEL = %v, want 1", got)
	}
}

func TestValuesAreClamped(t *testing.T) {
	params := drive.NewParameterSet()

	s, err := Load("clamp", `function automate() set("DRIVE", 1000) end`, params)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Run(0, 0); err != nil {
		t.Fatal(err)
	}

	if got := params.Get(drive.ParamDrive); got != 24 {
		t.Fatalf("DRIVE = %v, want 24", got)
	}
}

func TestUnknownParameterFailsRun(t *testing.T) {
	s, err := Load("bad", `function automate() set("GAIN", 1) end`, drive.NewParameterSet())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Run(7, 0); !errors.Is(err, ErrScript) {
		t.Fatalf("err = %v, want ErrScript", err)
	}
}

func TestLoadErrors(t *testing.T) {
	params := drive.NewParameterSet()

	if _, err := Load("syntax", `function automate(`, params); !errors.Is(err, ErrScript) {
		t.Errorf("syntax error: err = %v", err)
	}

	if _, err := Load("missing", `x = 1`, params); !errors.Is(err, ErrNoEntryPoint) {
		t.Errorf("missing entry point: err = %v", err)
	}

	if _, err := Load("sandbox", `io.write("x") function automate() end`, params); !errors.Is(err, ErrScript) {
		t.Errorf("io library must be unavailable: err = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bypass.lua")
	src := "function automate(block)\n  if block > 0 then set(\"BYPASS\", 1) end\nend\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	params := drive.NewParameterSet()

	s, err := LoadFile(path, params)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for block := range 2 {
		if err := s.Run(block, 0); err != nil {
			t.Fatal(err)
		}
	}

	if params.Get(drive.ParamBypass) != 1 {
		t.Fatal("BYPASS not set")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.lua"), params); err == nil {
		t.Fatal("missing file loaded")
	}
}

var _ Target = (*param.Set)(nil)
