package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Bridge copies text or item bytes to the system clipboard. The preferred
// path is an OSC 52 write straight to the terminal; when no terminal is
// attached it falls back to an external clipboard command fed from a
// transient spool file that is removed on every exit path.
type Bridge struct {
	log zerolog.Logger

	out             io.Writer
	secureAvailable func() bool
	lookPath        func(string) (string, error)
	runCommand      func(*exec.Cmd) error
}

func New(log zerolog.Logger) *Bridge {
	return &Bridge{
		log: log,
		out: os.Stdout,
		secureAvailable: func() bool {
			return isatty.IsTerminal(os.Stdout.Fd())
		},
		lookPath:   exec.LookPath,
		runCommand: (*exec.Cmd).Run,
	}
}

type command struct {
	name string
	args []string
}

func textCommands() []command {
	return []command{
		{name: "pbcopy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "wl-copy"},
	}
}

func imageCommands(mimeType string) []command {
	return []command{
		{name: "wl-copy", args: []string{"--type", mimeType}},
		{name: "xclip", args: []string{"-selection", "clipboard", "-t", mimeType}},
	}
}

// CopyText places text on the clipboard. Failures never propagate: the
// fallback path logs and the operation degrades to a no-op.
func (b *Bridge) CopyText(text string) {
	if b.secureAvailable() {
		_, err := osc52.New(text).WriteTo(b.out)
		if err == nil {
			return
		}
		b.log.Warn().Err(err).Msg("osc52 clipboard write failed, trying fallback")
	}
	if err := b.copyTextFallback(text); err != nil {
		b.log.Error().Err(err).Msg("clipboard fallback failed")
	}
}

// copyTextFallback pipes the text into the first working clipboard command
// through a transient spool file, scoped to this call only.
func (b *Bridge) copyTextFallback(text string) error {
	spool, err := os.CreateTemp("", "feedpad-clip-*")
	if err != nil {
		return fmt.Errorf("create clipboard spool: %w", err)
	}
	defer func() {
		spool.Close()
		os.Remove(spool.Name())
	}()

	if _, err := spool.WriteString(text); err != nil {
		return fmt.Errorf("write clipboard spool: %w", err)
	}

	for _, c := range textCommands() {
		path, lookErr := b.lookPath(c.name)
		if lookErr != nil {
			continue
		}
		if _, err := spool.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind clipboard spool: %w", err)
		}
		cmd := exec.Command(path, c.args...)
		cmd.Stdin = spool
		if err := b.runCommand(cmd); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no clipboard command available")
}

// CopyImage fetches an item's bytes through the transport collaborator and
// writes them to the clipboard under their image MIME type. Fetch failures
// are returned so the caller can surface them; clipboard write failures are
// only logged.
func (b *Bridge) CopyImage(ctx context.Context, fetch func(context.Context) ([]byte, string, error)) error {
	data, mimeType, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch image for clipboard: %w", err)
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	if err := b.copyBytes(data, mimeType); err != nil {
		b.log.Error().Err(err).Str("mime", mimeType).Msg("image clipboard write failed")
	}
	return nil
}

func (b *Bridge) copyBytes(data []byte, mimeType string) error {
	spool, err := os.CreateTemp("", "feedpad-clip-*")
	if err != nil {
		return fmt.Errorf("create clipboard spool: %w", err)
	}
	defer func() {
		spool.Close()
		os.Remove(spool.Name())
	}()

	if _, err := spool.Write(data); err != nil {
		return fmt.Errorf("write clipboard spool: %w", err)
	}

	for _, c := range imageCommands(mimeType) {
		path, lookErr := b.lookPath(c.name)
		if lookErr != nil {
			continue
		}
		if _, err := spool.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind clipboard spool: %w", err)
		}
		cmd := exec.Command(path, c.args...)
		cmd.Stdin = spool
		if err := b.runCommand(cmd); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no image clipboard command available")
}
