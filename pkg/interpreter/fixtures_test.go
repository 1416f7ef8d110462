package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"mlang/interpreter-go/pkg/runtime"
	"mlang/interpreter-go/pkg/typechecker"
)

const fixtureTypecheckEnv = "MLANG_TYPECHECK_FIXTURES"

type fixtureTypecheckMode int

const (
	typecheckModeOff fixtureTypecheckMode = iota
	typecheckModeWarn
	typecheckModeStrict
)

type fixtureManifest struct {
	Description      string `yaml:"description"`
	Source           string `yaml:"source"`
	Scope            string `yaml:"scope"`
	Broadcast        bool   `yaml:"broadcast"`
	AllowDiagnostics bool   `yaml:"allow_diagnostics"`
	Expect           struct {
		Stdout      []string `yaml:"stdout"`
		Result      *string  `yaml:"result"`
		Error       string   `yaml:"error"`
		Diagnostics []string `yaml:"diagnostics"`
	} `yaml:"expect"`
}

func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "fixtures", "*.yml"))
	if err != nil {
		t.Fatalf("listing fixtures: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no fixtures found")
	}
	mode := fixtureTypecheckModeFromEnv()
	for _, path := range paths {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			runFixture(t, path, mode)
		})
	}
}

// fixtureTypecheckModeFromEnv defaults to strict: fixtures assert the exact
// checker diagnostics. warn only logs them; off skips the checker.
func fixtureTypecheckModeFromEnv() fixtureTypecheckMode {
	modeVal, ok := os.LookupEnv(fixtureTypecheckEnv)
	if !ok {
		return typecheckModeStrict
	}
	switch strings.TrimSpace(strings.ToLower(modeVal)) {
	case "0", "off", "false":
		return typecheckModeOff
	case "warn", "warning":
		return typecheckModeWarn
	default:
		return typecheckModeStrict
	}
}

func readFixture(t *testing.T, path string) fixtureManifest {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	var manifest fixtureManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
	return manifest
}

func runFixture(t *testing.T, path string, mode fixtureTypecheckMode) {
	t.Helper()
	manifest := readFixture(t, path)
	if mode == typecheckModeOff && len(manifest.Expect.Diagnostics) > 0 {
		t.Skipf("fixture expects checker diagnostics")
	}
	scope, err := ParseScopeMode(manifest.Scope)
	if err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}

	var stdout bytes.Buffer
	interp := New(Config{Stdout: &stdout, Scoping: scope, Broadcast: manifest.Broadcast})
	result, err := interp.EvaluateSource([]byte(manifest.Source), ProgramOptions{
		SkipTypecheck:    mode == typecheckModeOff,
		AllowDiagnostics: manifest.AllowDiagnostics,
	})
	if len(result.Syntax) > 0 {
		t.Fatalf("fixture %s has syntax errors: %v", path, result.Syntax)
	}
	checkFixtureDiagnostics(t, mode, manifest.Expect.Diagnostics, result.Diagnostics)

	if manifest.Expect.Error != "" {
		if err == nil {
			t.Fatalf("expected evaluation error containing %q", manifest.Expect.Error)
		}
		if !strings.Contains(err.Error(), manifest.Expect.Error) {
			t.Fatalf("expected error containing %q, got %v", manifest.Expect.Error, err)
		}
	} else if err != nil {
		t.Fatalf("evaluation error: %v", err)
	}

	if got := outputLines(stdout.String()); !reflect.DeepEqual(got, manifest.Expect.Stdout) {
		if len(got) != 0 || len(manifest.Expect.Stdout) != 0 {
			t.Fatalf("expected stdout %q, got %q", manifest.Expect.Stdout, got)
		}
	}
	if manifest.Expect.Result != nil {
		if !result.Evaluated {
			t.Fatalf("expected program to be evaluated")
		}
		if got := runtime.Format(result.Value); got != *manifest.Expect.Result {
			t.Fatalf("expected result %q, got %q", *manifest.Expect.Result, got)
		}
	}
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func checkFixtureDiagnostics(t *testing.T, mode fixtureTypecheckMode, expected []string, diags []typechecker.Diagnostic) {
	t.Helper()
	if mode == typecheckModeOff {
		return
	}
	var actual []string
	for _, diag := range diags {
		actual = append(actual, diag.Message)
		t.Logf("typechecker: %s", typechecker.DescribeDiagnostic(diag))
	}
	if mode == typecheckModeWarn {
		return
	}
	if len(actual) == 0 && len(expected) == 0 {
		return
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("expected typechecker diagnostics %v, got %v", expected, actual)
	}
}
