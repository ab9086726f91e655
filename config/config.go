package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DefaultPort is the fixed port the test server listens on.
	DefaultPort = 8000

	// TestPage is the page the banner points the operator at.
	TestPage = "/test-cookiebot.html"
)

// Config holds the server settings. It is built once at startup and never
// modified afterwards.
type Config struct {
	host string
	port int
	root string
}

// Load builds the configuration used by the binary: all interfaces, the fixed
// port, and the directory containing the running executable as the root.
func Load() (*Config, error) {
	root, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	return New(root, DefaultPort)
}

// New builds a configuration serving root on port. Root is made absolute and
// must be an existing directory.
func New(root string, port int) (*Config, error) {
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}

	return &Config{
		host: "",
		port: port,
		root: abs,
	}, nil
}

// ExecutableDir returns the absolute directory of the running executable with
// symlinks resolved. It does not depend on the working directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}

func (c *Config) Host() string {
	return c.host
}

func (c *Config) Port() int {
	return c.port
}

func (c *Config) Root() string {
	return c.root
}

// Addr is the listen address, e.g. ":8000".
func (c *Config) Addr() string {
	return c.host + ":" + strconv.Itoa(c.port)
}

// BaseURL is the address operators open in a browser.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://localhost:%d", c.port)
}

func (c *Config) TestPageURL() string {
	return c.BaseURL() + TestPage
}
