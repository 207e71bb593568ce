package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/navarea/config"
)

const courtyard = "scene/testdata/courtyard.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := rootCmd()
	c.SetArgs(append(args, "--seed", "1"))
	c.SetOut(&out)
	c.SetErr(io.Discard)
	err := c.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", "--scene", courtyard)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{
		"yard [0,0]-[200,200] z=0 north=ramp east=hall south=porch\n",
		"hall [200,50]-[400,150] z=0 west=yard\n",
		"shed [500,50]-[600,150] z=0\n",
		"areas=6 connections=6 ladders=1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInfoPath(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
	}{
		{"yard", "hall", "path yard -> hall "},
		{"hall", "roof", "path hall -> yard -> roof "},
		{"yard", "shed", "no path; closest "},
	}

	for _, tt := range tests {
		t.Run(tt.from+"-"+tt.to, func(t *testing.T) {
			out, err := run(t, "info", "--scene", courtyard, "--from", tt.from, "--to", tt.to)
			if err != nil {
				t.Fatalf("info: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestBake(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report")
	out, err := run(t, "bake", "--scene", courtyard, "--output-dir", dir, "--repeat", "2")
	if err != nil {
		t.Fatalf("bake: %v", err)
	}
	if !strings.HasPrefix(out, "areas=6 hiding_spots=") {
		t.Errorf("unexpected output %q", out)
	}
	for _, name := range []string{"areas.csv", "hiding_spots.csv", "encounters.csv", "perf.csv", "summary.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing report %s: %v", name, err)
		}
	}
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "split",
			args: []string{"split", "--area", "yard", "--along", "y", "--at", "100"},
			want: []string{"[0,0]-[100,200]", "[100,0]-[200,200]"},
		},
		{
			name: "merge",
			args: []string{"merge", "--area", "yard", "--with", "porch"},
			want: []string{"[0,0]-[200,300]", "north=ramp"},
		},
		{
			name: "splice",
			args: []string{"splice", "--area", "hall", "--with", "shed"},
			want: []string{"[400,50]-[500,150] z=0 east=shed west=hall"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append(tt.args, "--scene", courtyard)...)
			if err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no scene", []string{"info"}, "--scene is required"},
		{"missing scene", []string{"info", "--scene", "scene/testdata/nope.yaml"}, "reading scene file"},
		{"unknown area", []string{"split", "--scene", courtyard, "--area", "cellar"}, "unknown area"},
		{"bad axis", []string{"split", "--scene", courtyard, "--area", "yard", "--along", "z"}, "--along"},
		{"split rejected", []string{"split", "--scene", courtyard, "--area", "yard", "--at", "0.5"}, "rejected"},
		{"merge rejected", []string{"merge", "--scene", courtyard, "--area", "yard", "--with", "ramp"}, "rejected"},
		{"splice rejected", []string{"splice", "--scene", courtyard, "--area", "yard", "--with", "roof"}, "rejected"},
		{"bad log level", []string{"info", "--scene", courtyard, "--log-level", "loud"}, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		lc      config.LoggingConfig
		wantErr bool
		want    string
	}{
		{"json", config.LoggingConfig{Level: "info", Format: "json"}, false, `"msg":"hello"`},
		{"text", config.LoggingConfig{Level: "debug", Format: "text"}, false, "msg=hello"},
		{"defaults", config.LoggingConfig{}, false, `"msg":"hello"`},
		{"bad format", config.LoggingConfig{Format: "xml"}, true, ""},
		{"bad level", config.LoggingConfig{Level: "chatty"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := newLogger(tt.lc, &buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			logger.Info("hello")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}
