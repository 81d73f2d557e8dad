package cli

// DefaultMaxRounds bounds the deferred-retry loop. Every round that makes
// progress resolves at least one candidate, so the bound is only a guard
// against pathological inputs.
const DefaultMaxRounds = 10

// Config holds the configuration for a synthesis run
type Config struct {
	// Directories is the list of directories to scan for marked Go files.
	// Supports Go-style patterns like "./..." for recursive scanning.
	Directories []string

	// ModuleName is the custom module name for imports.
	// If empty, will be determined from go.mod file.
	ModuleName string

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// MaxRounds caps the deferred-retry loop; zero means DefaultMaxRounds
	MaxRounds int
}

func (c *Config) maxRounds() int {
	if c.MaxRounds > 0 {
		return c.MaxRounds
	}
	return DefaultMaxRounds
}
