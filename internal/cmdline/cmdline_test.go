package cmdline

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

var allCaps = Capabilities{OpenMP: true, GPU: true}

func mustParse(t *testing.T, args []string, caps Capabilities) RunConfig {
	t.Helper()
	cfg, err := Parse(args, caps)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cfg
}

func mustFail(t *testing.T, args []string, caps Capabilities) *ParseError {
	t.Helper()
	_, err := Parse(args, caps)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(%v) error = %v, want *ParseError", args, err)
	}
	return pe
}

func TestParse_Defaults(t *testing.T) {
	got := mustParse(t, nil, allCaps)
	if !reflect.DeepEqual(got, DefaultConfig()) {
		t.Errorf("Parse(nil) = %+v, want defaults %+v", got, DefaultConfig())
	}
}

func TestParse_EquivalentForms(t *testing.T) {
	// Separate tokens, =-joined, and glued short form must produce
	// identical configurations.
	forms := [][]string{
		{"-n", "2048"},
		{"--resolution=2048"},
		{"--res", "2048"},
		{"-n2048"},
		{"-n=2048"},
	}

	want := mustParse(t, forms[0], allCaps)
	for _, args := range forms[1:] {
		got := mustParse(t, args, allCaps)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Parse(%v) = %+v, want %+v", args, got, want)
		}
	}
	if want.Resolution != 2048 {
		t.Errorf("Resolution = %d, want 2048", want.Resolution)
	}
}

func TestParse_AllScalarFields(t *testing.T) {
	args := []string{
		"-n", "500",
		"-f", "25",
		"-c", "0.5",
		"-o", "data",
		"-e", "2.5",
		"-r", "3",
		"--cfl", "0.4",
	}
	got := mustParse(t, args, allCaps)
	want := RunConfig{
		Resolution:         500,
		Fold:               25,
		CheckpointInterval: 0.5,
		Outdir:             "data",
		EndTime:            2.5,
		RKOrder:            3,
		CFLNumber:          0.4,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(%v) = %+v, want %+v", args, got, want)
	}
}

func TestParse_BooleanFlags(t *testing.T) {
	if cfg := mustParse(t, []string{"-p"}, allCaps); !cfg.UseOMP {
		t.Error("UseOMP = false after -p")
	}
	if cfg := mustParse(t, []string{"--use-gpu"}, allCaps); !cfg.UseGPU {
		t.Error("UseGPU = false after --use-gpu")
	}
}

func TestParse_MutuallyExclusiveFlags(t *testing.T) {
	// Order must not matter.
	for _, args := range [][]string{
		{"-p", "-g"},
		{"-g", "-p"},
		{"--use-gpu", "-n", "64", "--use-omp"},
	} {
		pe := mustFail(t, args, allCaps)
		if !strings.Contains(pe.Message, "mutually exclusive") {
			t.Errorf("Parse(%v) message = %q, want mutual exclusion error", args, pe.Message)
		}
	}
}

func TestParse_RKOrderBounds(t *testing.T) {
	for _, v := range []string{"1", "2", "3"} {
		cfg := mustParse(t, []string{"-r", v}, allCaps)
		if cfg.RKOrder < 1 || cfg.RKOrder > 3 {
			t.Errorf("RKOrder = %d for -r %s", cfg.RKOrder, v)
		}
	}
	// Syntactically valid integers outside [1,3] still fail.
	for _, v := range []string{"0", "4", "-1", "100"} {
		pe := mustFail(t, []string{"-r", v}, allCaps)
		if !strings.Contains(pe.Message, "rk-order") {
			t.Errorf("Parse(-r %s) message = %q, want rk-order error", v, pe.Message)
		}
	}
}

func TestParse_BadValues(t *testing.T) {
	tests := []struct {
		args  []string
		field string
		token string
	}{
		{[]string{"-n", "abc"}, "resolution", "abc"},
		{[]string{"-n", "-5"}, "resolution", "-5"},
		{[]string{"-f", "x"}, "fold", "x"},
		{[]string{"-c", "soon"}, "checkpoint", "soon"},
		{[]string{"-e", "never"}, "end-time", "never"},
		{[]string{"--cfl", "fast"}, "cfl", "fast"},
	}
	for _, tt := range tests {
		pe := mustFail(t, tt.args, allCaps)
		if !strings.Contains(pe.Message, tt.field) || !strings.Contains(pe.Message, tt.token) {
			t.Errorf("Parse(%v) message = %q, want field %q and token %q named",
				tt.args, pe.Message, tt.field, tt.token)
		}
	}
}

func TestParse_UnrecognizedToken(t *testing.T) {
	for _, tok := range []string{"--frobnicate", "-z", "stray"} {
		pe := mustFail(t, []string{tok}, allCaps)
		if !strings.Contains(pe.Message, "unrecognized option") || !strings.Contains(pe.Message, tok) {
			t.Errorf("Parse(%q) message = %q, want unrecognized option naming token", tok, pe.Message)
		}
	}
}

func TestParse_DanglingFlag(t *testing.T) {
	for _, args := range [][]string{
		{"-n"},
		{"--end-time"},
		{"-p", "--cfl"},
	} {
		pe := mustFail(t, args, allCaps)
		if pe.Message != "missing argument" {
			t.Errorf("Parse(%v) message = %q, want %q", args, pe.Message, "missing argument")
		}
	}
}

func TestParse_HelpShortCircuits(t *testing.T) {
	// Help wins even when surrounded by otherwise-invalid tokens, and the
	// remainder is never validated.
	for _, args := range [][]string{
		{"--help"},
		{"-h"},
		{"-n", "2048", "--help", "--garbage"},
		{"--help", "--frobnicate"},
		{"--bogus", "--help"},
		{"-n", "abc", "--help"},
	} {
		_, err := Parse(args, allCaps)
		var info *InformationRequested
		if !errors.As(err, &info) {
			t.Fatalf("Parse(%v) error = %v, want *InformationRequested", args, err)
		}
		if !strings.Contains(info.Text, "usage: sailfish") {
			t.Errorf("help text missing usage line: %q", info.Text)
		}
	}
}

func TestParse_VersionShortCircuits(t *testing.T) {
	_, err := Parse([]string{"--garbage-later", "ignored"}, allCaps)
	if err == nil {
		t.Fatal("expected error for garbage input")
	}

	for _, args := range [][]string{
		{"--version", "--garbage-later"},
		{"--garbage-first", "--version"},
	} {
		_, err = Parse(args, allCaps)
		var info *InformationRequested
		if !errors.As(err, &info) {
			t.Fatalf("Parse(%v) error = %v, want *InformationRequested", args, err)
		}
		if info.Text != Version+"\n" {
			t.Errorf("version text = %q, want %q", info.Text, Version+"\n")
		}
	}
}

func TestParse_CapabilityGating(t *testing.T) {
	// Without the OpenMP capability, -p is just an unrecognized option.
	pe := mustFail(t, []string{"-p"}, Capabilities{})
	if !strings.Contains(pe.Message, "-p") {
		t.Errorf("message = %q, want token -p named", pe.Message)
	}
	pe = mustFail(t, []string{"--use-gpu"}, Capabilities{OpenMP: true})
	if !strings.Contains(pe.Message, "--use-gpu") {
		t.Errorf("message = %q, want token --use-gpu named", pe.Message)
	}
}

func TestHelpText_CapabilityConditional(t *testing.T) {
	none := HelpText(Capabilities{})
	if strings.Contains(none, "--use-omp") || strings.Contains(none, "--use-gpu") {
		t.Errorf("help for capability-free build lists backend flags:\n%s", none)
	}

	all := HelpText(allCaps)
	for _, want := range []string{
		"--version", "-h|--help", "-p|--use-omp", "-g|--use-gpu",
		"-n|--resolution", "-f|--fold", "-c|--checkpoint", "-o|--outdir",
		"-e|--end-time", "-r|--rk-order", "--cfl", "OMP_NUM_THREADS",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("help text missing %q:\n%s", want, all)
		}
	}
}

func TestParse_NoBoundsChecksOnOtherFields(t *testing.T) {
	// Zero and negative values pass everywhere except rk-order; preserved
	// behavior of the driver this replaces.
	cfg := mustParse(t, []string{"-n", "0", "-e", "-1.0", "--cfl", "-0.5", "-c", "0"}, allCaps)
	if cfg.Resolution != 0 || cfg.EndTime != -1.0 || cfg.CFLNumber != -0.5 || cfg.CheckpointInterval != 0 {
		t.Errorf("unexpected clamping: %+v", cfg)
	}
}
