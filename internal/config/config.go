// Package config holds the settings rvframe uses to reproduce a kernel's
// first-run frames on the host.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FrameConfig describes the target the frames are built for. Addresses
// are what the kernel's linker map says for the trampoline and the
// interrupt-return stub.
type FrameConfig struct {
	StackSize       uint64 `yaml:"stack_size"`
	Trampoline      uint64 `yaml:"trampoline"`
	InterruptReturn uint64 `yaml:"interrupt_return"`
	Entry           uint64 `yaml:"entry"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
}

// Default matches the kernel's boot configuration: one page per stack.
func Default() FrameConfig {
	return FrameConfig{
		StackSize:       4096,
		Trampoline:      0x80000100,
		InterruptReturn: 0x80000200,
		Entry:           0x80001000,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads path over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (FrameConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c FrameConfig) Validate() error {
	if c.StackSize == 0 {
		return fmt.Errorf("stack_size must be positive")
	}
	if c.Entry == 0 {
		return fmt.Errorf("entry must be non-zero")
	}
	if c.Trampoline == 0 || c.InterruptReturn == 0 {
		return fmt.Errorf("trampoline and interrupt_return must be set")
	}
	return nil
}
