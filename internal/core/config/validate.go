package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidateDeep performs structural validation plus checks that touch the
// filesystem: the config file itself, every root, and every ignore pattern.
// The configPath argument names the file to check; empty skips that check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateRoots(),
		c.validateIgnore(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateRoots() error {
	var errs criterio.FieldErrorsBuilder
	for i, root := range c.Roots {
		if err := isDirectory(root); err != nil {
			errs = errs.Append(fmt.Sprintf("roots[%d]", i), err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateIgnore() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	return errs.ToError()
}

// isDirectory validates that path exists and is a directory.
func isDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
