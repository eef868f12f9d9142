package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeName(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"my_tool":        "my-tool",
		"my tool":        "my-tool",
		"a-b":            "a-b",
		"v1.2.3":         "v1-2-3",
		"/home/u/proj":   "-home-u-proj",
		"C:\\Users\\dev": "C--Users-dev",
	}
	for in, want := range cases {
		if got := EncodeName(in); got != want {
			t.Errorf("EncodeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func mkdirs(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Join(root, p), 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolvePartsSeparators(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "home/dev/proj")

	got, ok := ResolveParts(root, []string{"home", "dev", "proj"})
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if want := filepath.Join(root, "home", "dev", "proj"); got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}

func TestResolvePartsHyphenatedNames(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "home/dev/my-cool_tool")

	// "my-cool_tool" encodes to "my-cool-tool": three parts that are not
	// separators at all.
	got, ok := ResolveParts(root, strings.Split("home-dev-my-cool-tool", "-"))
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if want := filepath.Join(root, "home", "dev", "my-cool_tool"); got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}

func TestResolvePartsPrefersExistingOverLexical(t *testing.T) {
	// Both decodes of "ProgramData-Packages-App" are lexically plausible;
	// only the one matching real directories may win.
	root := t.TempDir()
	mkdirs(t, root, "ProgramData-Packages/App")

	got, ok := ResolveParts(root, []string{"ProgramData", "Packages", "App"})
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if want := filepath.Join(root, "ProgramData-Packages", "App"); got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}

func TestResolvePartsSpacesInNames(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "My Documents/side project")

	got, ok := ResolveParts(root, strings.Split("My-Documents-side-project", "-"))
	if !ok {
		t.Fatal("expected resolution to succeed")
	}
	if want := filepath.Join(root, "My Documents", "side project"); got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}

func TestResolvePartsNoMatch(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "other")

	if _, ok := ResolveParts(root, []string{"home", "dev"}); ok {
		t.Error("expected resolution to fail for nonexistent path")
	}
}

func TestDecodeDir(t *testing.T) {
	real := filepath.Join(t.TempDir(), "probe-target", "deep")
	if err := os.MkdirAll(real, 0755); err != nil {
		t.Fatal(err)
	}
	entry := EncodePath(real)

	got, missing := DecodeDir(entry)
	if missing {
		t.Fatal("existing path flagged missing")
	}
	if got != real {
		t.Errorf("DecodeDir(%q) = %q, want %q", entry, got, real)
	}
}

func TestDecodeDirFullEntryPath(t *testing.T) {
	// The launcher passes the full projects-dir entry path, not the bare
	// name; decoding must strip the leading directories first.
	real := filepath.Join(t.TempDir(), "probe-target", "deep")
	if err := os.MkdirAll(real, 0755); err != nil {
		t.Fatal(err)
	}
	fullEntry := filepath.Join(t.TempDir(), "projects", EncodePath(real))

	got, missing := DecodeDir(fullEntry)
	if missing {
		t.Fatal("existing path flagged missing")
	}
	if got != real {
		t.Errorf("DecodeDir(%q) = %q, want %q", fullEntry, got, real)
	}
}

func TestResolvePartsRoundTrip(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		"work/repo",
		"work/my_repo",
		"work/a-b/c_d",
		"deep/x y/z-1",
	}
	mkdirs(t, root, dirs...)

	for _, d := range dirs {
		encoded := EncodeName(d)
		got, ok := ResolveParts(root, strings.Split(encoded, "-"))
		if !ok {
			t.Errorf("%q: resolution failed", d)
			continue
		}
		if want := filepath.Join(root, filepath.FromSlash(d)); got != want {
			t.Errorf("%q: resolved %q, want %q", d, got, want)
		}
	}
}
