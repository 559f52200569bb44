package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener opens web pages in an external browser
type Opener struct {
	command string   // configured browser command, empty for system default
	args    []string // arguments placed before the URL
	goos    string
	logger  *slog.Logger

	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath defines a single way to hand a URL to the system
type launchPath struct {
	path string   // Command name looked up in PATH
	args []string // Arguments placed before the URL
}

// systemOpeners lists the default handlers per platform, tried in order
var systemOpeners = map[string][]launchPath{
	"darwin": {{path: "open"}},
	"linux": {
		{path: "xdg-open"},
		{path: "sensible-browser"},
		{path: "x-www-browser"},
	},
	"windows": {
		{path: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
		{path: "cmd", args: []string{"/c", "start", ""}},
	},
}

// NewOpener creates an Opener. An empty command uses the system default.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Open hands the URL to the configured browser or the system default
func (o *Opener) Open(url string) error {
	// Tier 1: User configured a specific browser
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		o.logger.Info("opening with configured browser", "command", o.command, "url", url)
		return o.start(o.command, args...)
	}

	// Tier 2: Platform handlers in order
	paths, ok := systemOpeners[o.goos]
	if !ok {
		paths = systemOpeners["linux"]
	}
	for _, lp := range paths {
		if _, err := o.lookPath(lp.path); err != nil {
			o.logger.Debug("opener not available", "path", lp.path, "error", err)
			continue
		}
		args := append(append([]string{}, lp.args...), url)
		if err := o.start(lp.path, args...); err != nil {
			o.logger.Debug("opener failed", "path", lp.path, "error", err)
			continue
		}
		o.logger.Info("opened with system default", "os", o.goos, "path", lp.path, "url", url)
		return nil
	}

	return fmt.Errorf("no browser available to open %s", url)
}
