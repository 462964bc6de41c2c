// Package config loads the engine's tunable memory and execution
// parameters from an optional TOML file, the way sentra and the rest of
// the retrieval pack's CLI tools (vovakirdan-surge, chazu-maggie) load
// their own settings with github.com/BurntSushi/toml.
package config

import "github.com/BurntSushi/toml"

// Config holds the engine's tunables. internal/engine.New reads
// HeapSizeBytes, MinorThresholdBytes, and MaxCallDepth; PoolPageChunks
// and MaxRegisters are loaded but not read by any package.
type Config struct {
	Memory     MemoryConfig     `toml:"memory"`
	GC         GCConfig         `toml:"gc"`
	Interpreter InterpreterConfig `toml:"interpreter"`
}

type MemoryConfig struct {
	HeapSizeBytes  uint32 `toml:"heap_size_bytes"`
	PoolPageChunks uint32 `toml:"pool_page_chunks"`
}

type GCConfig struct {
	// MinorThresholdBytes is the heap occupancy, in bytes, above which
	// internal/engine proactively runs a minor collection between
	// opcodes rather than waiting for an allocation to fail outright.
	MinorThresholdBytes uint32 `toml:"minor_threshold_bytes"`
}

type InterpreterConfig struct {
	MaxRegisters  int `toml:"max_registers"`
	MaxCallDepth  int `toml:"max_call_depth"`
}

// Default returns the compiled-in defaults used when no config file is
// supplied, sized for the "memory-constrained device" target spec.md
// describes.
func Default() Config {
	return Config{
		Memory: MemoryConfig{
			HeapSizeBytes:  65536,
			PoolPageChunks: 64,
		},
		GC: GCConfig{
			MinorThresholdBytes: 49152, // 75% of the default heap
		},
		Interpreter: InterpreterConfig{
			MaxRegisters: 256,
			MaxCallDepth: 256,
		},
	}
}

// Load reads a TOML config file, overlaying it on Default() so a file
// that sets only one field leaves the rest at their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
