package blocktrie

import (
	"os"
	"regexp"
	"strings"

	"github.com/go-ini/ini"
)

// HashConfig mirrors the [hash] section of a config file.
type HashConfig struct {
	Default string // default hash algorithm name
}

// ScanConfig mirrors the [scan] section of a config file.
type ScanConfig struct {
	BlockSize int
	MinSize   int64
	Patterns  []string
	Exclude   []string
}

// OutputConfig mirrors the [output] section of a config file.
type OutputConfig struct {
	Format string // text or json
}

// Config holds CLI defaults loaded from an ini-format file. It never
// influences Engine directly; callers read it to build an InitParams.
type Config struct {
	path string
	ini  *ini.File
}

// LoadConfig loads path. A missing file is not an error: it yields a
// Config backed entirely by built-in defaults. A malformed file is a
// ConfigError.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{path: path, ini: ini.Empty()}, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return nil, &ConfigError{Field: "config", Value: path, Reason: err.Error()}
	}
	c := &Config{path: path, ini: f}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate rejects an unrecognised [hash] default at load time rather
// than deferring to whatever later reads the section, so a bad hash name
// never silently coerces to the default algorithm. No other key is
// checked here: ScanConfig falls back to the built-in value for a
// block_size or min_size that does not parse, and OutputConfig passes
// any format through as given.
func (c *Config) validate() error {
	if c.ini.HasSection("hash") {
		section := c.ini.Section("hash")
		if section.HasKey("default") {
			if _, err := ParseAlgo(section.Key("default").String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// HashConfig returns the [hash] section, falling back to the engine's
// built-in default algorithm.
func (c *Config) HashConfig() HashConfig {
	h := HashConfig{Default: DefaultAlgo.String()}
	if c.ini.HasSection("hash") {
		section := c.ini.Section("hash")
		if section.HasKey("default") {
			h.Default = section.Key("default").String()
		}
	}
	return h
}

// ScanConfig returns the [scan] section, falling back to the engine's
// built-in defaults for any key that is absent.
func (c *Config) ScanConfig() ScanConfig {
	s := ScanConfig{BlockSize: DefaultBlockSize, MinSize: DefaultFileMinSize}
	if !c.ini.HasSection("scan") {
		return s
	}
	section := c.ini.Section("scan")
	if section.HasKey("block_size") {
		if n, err := section.Key("block_size").Int(); err == nil {
			s.BlockSize = n
		}
	}
	if section.HasKey("min_size") {
		if n, err := section.Key("min_size").Int64(); err == nil {
			s.MinSize = n
		}
	}
	if section.HasKey("patterns") {
		s.Patterns = SplitList(section.Key("patterns").String())
	}
	if section.HasKey("exclude") {
		s.Exclude = SplitList(section.Key("exclude").String())
	}
	return s
}

// OutputConfig returns the [output] section, falling back to "text".
func (c *Config) OutputConfig() OutputConfig {
	o := OutputConfig{Format: "text"}
	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			o.Format = section.Key("format").String()
		}
	}
	return o
}

// SplitList accepts comma, semicolon or colon separated lists, matching
// the CLI's --patterns / --exclude-path surface.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ':'
	}) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CompilePatterns compiles filename fragments into case-insensitive
// regexes, ready for InitParams.RXPatterns. Regex compilation
// itself is outside the core's scope; this lives alongside Config
// because both are consumed by the same caller, before NewEngine.
func CompilePatterns(raw []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, &ConfigError{Field: "patterns", Value: p, Reason: err.Error()}
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}
