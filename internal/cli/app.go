package cli

import (
	"bufio"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/poznote/poznote-cli/internal/clipboard"
	"github.com/poznote/poznote-cli/internal/config"
)

// App bundles every external collaborator behind a narrow seam so commands
// run identically against the real system and against test fakes.
type App struct {
	Fs         afero.Fs
	ConfigPath string
	Clipboard  clipboard.Clipboard
	// HTTPClient may be nil; the poznote client then uses its default
	// with the standard request timeout.
	HTTPClient *http.Client
	Stdin      io.Reader
	// StdinIsTerminal reports whether stdin is an interactive terminal,
	// i.e. nothing was piped in.
	StdinIsTerminal func() bool
	Stdout          io.Writer
	Stderr          io.Writer
	// WaitKey blocks until the operator presses Enter. Burn mode only.
	WaitKey func() error
	Now     func() time.Time
}

// NewApp wires the real collaborators.
func NewApp() *App {
	return &App{
		Fs:         afero.NewOsFs(),
		ConfigPath: config.DefaultPath(),
		Clipboard:  clipboard.New(),
		Stdin:      os.Stdin,
		StdinIsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		WaitKey: waitForKeypress,
		Now:     time.Now,
	}
}

// waitForKeypress reads one line from the controlling terminal. Stdin has
// usually been drained by the piped note body at this point, so /dev/tty
// is tried first.
func waitForKeypress() error {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		_, err = bufio.NewReader(os.Stdin).ReadString('\n')
		return err
	}
	defer tty.Close()
	_, err = bufio.NewReader(tty).ReadString('\n')
	return err
}

func (a *App) newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: a.Stderr}).Level(level).With().Timestamp().Logger()
}
