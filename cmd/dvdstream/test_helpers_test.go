package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dvdstream/internal/testsupport"
)

// setupCLITestEnv points HOME at a temp directory so the default config,
// cache, and lock paths stay inside the test sandbox.
func setupCLITestEnv(t *testing.T) {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func requireNotContains(t *testing.T, output, unwanted string) {
	t.Helper()
	if strings.Contains(output, unwanted) {
		t.Fatalf("output unexpectedly contains %q:\n%s", unwanted, output)
	}
}

func writeFixtureVolume(t *testing.T) string {
	t.Helper()
	return testsupport.WriteVolume(t, t.TempDir(), testsupport.VolumeSpec{
		Titles: []testsupport.TitleSpec{
			{TitleSet: 1, Chapters: 12, Angles: 1},
			{TitleSet: 2, Chapters: 4, Angles: 1},
			{TitleSet: 2, TitleInSet: 2, Chapters: 2, Angles: 1},
		},
		TitleSets: []testsupport.TitleSetSpec{
			{Index: 1, VOBSectors: []int64{6, 4}, MenuSectors: 2},
			{Index: 2, VOBSectors: []int64{5}},
		},
	})
}
