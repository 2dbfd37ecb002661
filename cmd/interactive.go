package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

var assumeYes bool

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptWorkingDirectory asks for the mod working directory until an existing folder is given.
func promptWorkingDirectory() (string, error) {
	prompt := promptui.Prompt{
		Label:    "Mod working directory",
		Validate: validateWorkingDirectory,
		Stdout:   &BellSkipper{},
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return expandPath(result)
}

func validateWorkingDirectory(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("path cannot be empty")
	}
	path, err := expandPath(input)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s does not exist", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// confirm asks a yes/no question. Without a terminal, or with --yes, it answers yes.
func confirm(label string) (bool, error) {
	if assumeYes || !isInteractive() {
		return true, nil
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdout:    &BellSkipper{},
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, err
	}
}

// BellSkipper implements an io.WriteCloser that skips the bell character (\a).
// This prevents annoying sounds on Windows terminals during prompts.
type BellSkipper struct{}

func (bs *BellSkipper) Write(b []byte) (int, error) {
	const bell = 7 // ASCII \a
	if len(b) == 1 && b[0] == bell {
		return 0, nil
	}
	filtered := make([]byte, 0, len(b))
	for _, byteVal := range b {
		if byteVal != bell {
			filtered = append(filtered, byteVal)
		}
	}
	// Report len(b) so callers see the whole chunk as written.
	_, err := os.Stdout.Write(filtered)
	return len(b), err
}

func (bs *BellSkipper) Close() error {
	return nil
}
