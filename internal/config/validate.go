package config

import (
	"errors"
	"fmt"
	"strings"
)

// ffmpegLogLevels are the verbosity names ffmpeg accepts for -loglevel.
var ffmpegLogLevels = map[string]struct{}{
	"quiet":   {},
	"panic":   {},
	"fatal":   {},
	"error":   {},
	"warning": {},
	"info":    {},
	"verbose": {},
	"debug":   {},
	"trace":   {},
}

// logLevels are the levels the sprocket logger accepts.
var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTools() error {
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		return errors.New("tools.ffprobe must be set")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if _, ok := ffmpegLogLevels[c.Transcode.LogLevel]; !ok {
		return fmt.Errorf("transcode.loglevel %q is not an ffmpeg verbosity level", c.Transcode.LogLevel)
	}
	for _, flag := range c.Transcode.MovFlags {
		if strings.ContainsAny(flag, "+ \t") {
			return fmt.Errorf("transcode.movflags entry %q must be a single flag name; flags are joined with '+' automatically", flag)
		}
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	if c.History.Limit < 1 {
		return errors.New("history.limit must be >= 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := logLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
