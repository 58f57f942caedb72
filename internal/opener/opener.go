// Package opener hands file links to an external program
package opener

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Opener opens URLs in the configured program or the system default
type Opener struct {
	command string   // configured command, empty for system default
	args    []string // additional arguments before the URL
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// New creates an Opener. command may carry its own arguments, e.g.
// "firefox --new-tab"; empty means the platform default handler.
func New(command string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}

	o := &Opener{
		goos:   runtime.GOOS,
		start:  startDetached,
		logger: logger,
	}
	if fields := strings.Fields(command); len(fields) > 0 {
		o.command = fields[0]
		o.args = fields[1:]
	}
	return o
}

// Open launches url without waiting for the program to exit
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}

	name, args := o.commandFor(url)
	o.logger.Info("opening url", "command", name, "args", args)

	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// commandFor returns the program and arguments used to open url
func (o *Opener) commandFor(url string) (string, []string) {
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		return o.command, args
	}

	switch o.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}

func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() // reap
	return nil
}
