// SPDX-FileCopyrightText: © 2026 scriptbridge authors
// SPDX-License-Identifier: BSD-2-Clause

// Package config reduces the runtime's construction API footprint using
// functional options, the way the teacher engine configures its window and
// clear color. See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
//
//	https://commandcenter.blogspot.ca/2014/01/self-referential-functions-and-design.html
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable the runtime needs before it is started. Once
// the runtime is running none of these values change.
type Config struct {
	// RenderQueueCapacity bounds the script → native command ring (§4.5).
	RenderQueueCapacity int `yaml:"render_queue_capacity"`

	// CallbackQueueCapacity bounds the native → script completion ring.
	CallbackQueueCapacity int `yaml:"callback_queue_capacity"`

	// HangFrames is the number of consecutive render frames a worker may
	// fail to complete before a hang is reported (§4.1: "N >= 30").
	HangFrames int `yaml:"hang_frames"`

	// SkipLogEvery is the frame-skip log rate (§4.2). The runtime does not
	// read it: logx.Logger logs every 60th skip regardless of this value.
	SkipLogEvery uint64 `yaml:"skip_log_every"`

	// ShutdownPollInterval and ShutdownCeiling govern the cooperative
	// shutdown poll described in §5.
	ShutdownPollInterval time.Duration `yaml:"shutdown_poll_interval"`
	ShutdownCeiling      time.Duration `yaml:"shutdown_ceiling"`

	// Default perspective camera parameters for "world" cameras (§3). The
	// dispatcher does not read these fields: "world" cameras always start
	// from camera.DefaultPerspectiveParams.
	DefaultFOV    float64 `yaml:"default_fov"`
	DefaultAspect float64 `yaml:"default_aspect"`
	DefaultNear   float64 `yaml:"default_near"`
	DefaultFar    float64 `yaml:"default_far"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// defaults provides reasonable values so the runtime starts even if no
// configuration attributes are set.
var defaults = Config{
	RenderQueueCapacity:   1024,
	CallbackQueueCapacity: 1024,
	HangFrames:            30,
	SkipLogEvery:          60,
	ShutdownPollInterval:  10 * time.Millisecond,
	ShutdownCeiling:       5 * time.Second,
	DefaultFOV:            60.0,
	DefaultAspect:         16.0 / 9.0,
	DefaultNear:           0.1,
	DefaultFar:            100.0,
	LogLevel:              "info",
}

// Attr is an optional override applied over the defaults. For use with New.
type Attr func(*Config)

// New builds a Config from the defaults plus any overrides, in order.
//
//	cfg := config.New(
//	    config.QueueCapacity(2048, 2048),
//	    config.HangThreshold(30),
//	)
func New(attrs ...Attr) Config {
	cfg := defaults
	for _, attr := range attrs {
		attr(&cfg)
	}
	return cfg
}

// QueueCapacity sets the render and callback queue capacities.
func QueueCapacity(renderQueue, callbackQueue int) Attr {
	return func(c *Config) {
		if renderQueue > 0 {
			c.RenderQueueCapacity = renderQueue
		}
		if callbackQueue > 0 {
			c.CallbackQueueCapacity = callbackQueue
		}
	}
}

// HangThreshold sets the number of consecutive incomplete frames that
// constitute a reported hang.
func HangThreshold(frames int) Attr {
	return func(c *Config) {
		if frames > 0 {
			c.HangFrames = frames
		}
	}
}

// ShutdownTiming sets the cooperative-shutdown poll interval and ceiling.
func ShutdownTiming(pollInterval, ceiling time.Duration) Attr {
	return func(c *Config) {
		if pollInterval > 0 {
			c.ShutdownPollInterval = pollInterval
		}
		if ceiling > 0 {
			c.ShutdownCeiling = ceiling
		}
	}
}

// DefaultPerspective sets the default "world" camera projection parameters.
func DefaultPerspective(fov, aspect, near, far float64) Attr {
	return func(c *Config) {
		c.DefaultFOV, c.DefaultAspect, c.DefaultNear, c.DefaultFar = fov, aspect, near, far
	}
}

// LogLevel sets the structured logger's minimum level.
func LogLevel(level string) Attr {
	return func(c *Config) { c.LogLevel = level }
}

// Load reads a YAML configuration file and overlays it onto the defaults.
// Fields absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := defaults
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
