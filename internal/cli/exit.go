package cli

import (
	"errors"

	"github.com/poznote/poznote-cli/internal/clipboard"
	"github.com/poznote/poznote-cli/internal/config"
	"github.com/poznote/poznote-cli/internal/poznote"
)

// Exit codes are load-bearing for automation; scripts branch on them.
const (
	ExitOK                = 0
	ExitMissingDependency = 10
	ExitNoInput           = 11
	ExitConfig            = 12
	ExitAPI               = 13
)

// ErrNoPipedInput means an action needed a note body but stdin is an
// interactive terminal and the clipboard flag was not given.
var ErrNoPipedInput = errors.New("no piped input detected")

// ExitCode maps an error from Execute to its process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, clipboard.ErrNoUtility) {
		return ExitMissingDependency
	}
	if errors.Is(err, ErrNoPipedInput) {
		return ExitNoInput
	}
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}
	var apiErr *poznote.APIError
	if errors.As(err, &apiErr) {
		return ExitAPI
	}
	return 1
}
