package clipboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestBridge(out io.Writer, secure bool) *Bridge {
	return &Bridge{
		log:             zerolog.Nop(),
		out:             out,
		secureAvailable: func() bool { return secure },
		lookPath:        func(string) (string, error) { return "", errors.New("not found") },
		runCommand:      func(*exec.Cmd) error { return errors.New("not run") },
	}
}

func TestCopyText_SecurePathWritesToTerminal(t *testing.T) {
	var out bytes.Buffer
	b := newTestBridge(&out, true)

	b.CopyText("hello")

	// OSC 52 carries the payload base64-encoded.
	if !strings.Contains(out.String(), "aGVsbG8=") {
		t.Fatalf("expected osc52 sequence with payload, got %q", out.String())
	}
}

func TestCopyText_FallbackPipesSpoolIntoCommand(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	var out bytes.Buffer
	b := newTestBridge(&out, false)
	b.lookPath = func(name string) (string, error) {
		if name == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}

	var piped string
	var spoolName string
	b.runCommand = func(cmd *exec.Cmd) error {
		f, ok := cmd.Stdin.(*os.File)
		if !ok {
			t.Fatalf("expected file stdin, got %T", cmd.Stdin)
		}
		spoolName = f.Name()
		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("read spool: %v", err)
		}
		piped = string(data)
		return nil
	}

	b.CopyText("fallback text")

	if piped != "fallback text" {
		t.Fatalf("command received %q", piped)
	}
	if out.Len() != 0 {
		t.Fatalf("secure path must not be used, wrote %q", out.String())
	}
	if _, err := os.Stat(spoolName); !os.IsNotExist(err) {
		t.Fatalf("spool file %s still exists", spoolName)
	}
}

func TestCopyText_SpoolRemovedWhenEveryCommandFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	b := newTestBridge(io.Discard, false)
	b.lookPath = func(string) (string, error) { return "/usr/bin/fake", nil }
	b.runCommand = func(*exec.Cmd) error { return errors.New("clipboard refused") }

	b.CopyText("doomed")

	assertNoSpoolFiles(t, dir)
}

func TestCopyText_NoCommandAvailableIsQuiet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	b := newTestBridge(io.Discard, false)
	b.CopyText("nowhere to go")

	assertNoSpoolFiles(t, dir)
}

func TestCopyImage_FetchErrorPropagates(t *testing.T) {
	b := newTestBridge(io.Discard, false)
	wantErr := errors.New("network down")

	err := b.CopyImage(context.Background(), func(context.Context) ([]byte, string, error) {
		return nil, "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestCopyImage_DefaultsMimeTypeAndPipesBytes(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	b := newTestBridge(io.Discard, false)
	b.lookPath = func(name string) (string, error) {
		if name == "wl-copy" {
			return "/usr/bin/wl-copy", nil
		}
		return "", errors.New("not found")
	}

	var args []string
	var piped []byte
	b.runCommand = func(cmd *exec.Cmd) error {
		args = cmd.Args
		data, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			t.Fatalf("read spool: %v", err)
		}
		piped = data
		return nil
	}

	payload := []byte{0x89, 'P', 'N', 'G'}
	err := b.CopyImage(context.Background(), func(context.Context) ([]byte, string, error) {
		return payload, "", nil
	})
	if err != nil {
		t.Fatalf("CopyImage returned error: %v", err)
	}
	if !bytes.Equal(piped, payload) {
		t.Fatalf("command received %v", piped)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--type image/png") {
		t.Fatalf("missing default mime type in args: %q", joined)
	}
}

func TestCopyImage_ClipboardFailureIsOnlyLogged(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	b := newTestBridge(io.Discard, false)
	err := b.CopyImage(context.Background(), func(context.Context) ([]byte, string, error) {
		return []byte("img"), "image/jpeg", nil
	})
	if err != nil {
		t.Fatalf("clipboard failure must not propagate, got %v", err)
	}
}

func assertNoSpoolFiles(t *testing.T, dir string) {
	t.Helper()
	leftovers, err := filepath.Glob(filepath.Join(dir, "feedpad-clip-*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("spool files left behind: %v", leftovers)
	}
}
