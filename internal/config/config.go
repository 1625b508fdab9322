package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tsvkit/tsvjoin/internal/table"
)

// Options is the fully resolved run configuration. It is built once at
// startup and read-only afterwards; the loader and the joiner both receive
// it explicitly instead of reading process-wide state.
type Options struct {
	FirstKeyCols  []int // 0-based key columns in the stdin stream
	SecondKeyCols []int // 0-based key columns in the lookup table
	KeepCols      []int // 0-based lookup columns to splice in
	Insert        int   // 0-based splice position
	IncludeHeader bool
	PrefixFirst   string
	PrefixSecond  string
	Fill01        bool
}

// Raw holds option values as they arrive from flags or a profile, with
// column positions still 1-based.
type Raw struct {
	First         string
	Second        string
	Keep          string
	Insert        int
	IncludeHeader bool
	PrefixFirst   string
	PrefixSecond  string
	Fill01        bool
}

// Resolve converts the raw values into an immutable Options. Column lists
// are translated from 1-based to 0-based here and nowhere else.
func (r Raw) Resolve() (*Options, error) {
	first, err := table.ParseColumns(r.First)
	if err != nil {
		return nil, fmt.Errorf("--first: %w", err)
	}
	second, err := table.ParseColumns(r.Second)
	if err != nil {
		return nil, fmt.Errorf("--second: %w", err)
	}
	keep, err := table.ParseColumns(r.Keep)
	if err != nil {
		return nil, fmt.Errorf("--keep: %w", err)
	}
	if r.Fill01 {
		// Presence mode ignores --keep. A single synthetic column keyed to
		// the first lookup key column keeps the derived header one field
		// wide, matching the indicator column.
		if len(second) > 0 {
			keep = second[:1]
		} else {
			keep = nil
		}
	}
	return &Options{
		FirstKeyCols:  first,
		SecondKeyCols: second,
		KeepCols:      keep,
		Insert:        r.Insert - 1,
		IncludeHeader: r.IncludeHeader,
		PrefixFirst:   r.PrefixFirst,
		PrefixSecond:  r.PrefixSecond,
		Fill01:        r.Fill01,
	}, nil
}

// Profile is an optional YAML file carrying join defaults and a lookup
// source. Flags override profile values.
type Profile struct {
	Join       Join       `yaml:"join"`
	Lookup     Lookup     `yaml:"lookup"`
	Connection Connection `yaml:"connection"`
}

// Join mirrors the command-line options, 1-based like the flags.
type Join struct {
	First              string `yaml:"first"`
	Second             string `yaml:"second"`
	Keep               string `yaml:"keep"`
	Insert             int    `yaml:"insert"`
	IncludeHeader      bool   `yaml:"include_header"`
	PrefixFirstHeader  string `yaml:"prefix_first_header"`
	PrefixSecondHeader string `yaml:"prefix_second_header"`
	Fill01             bool   `yaml:"fill01"`
}

// Lookup names the secondary source: a tab-delimited file or a SQL query.
type Lookup struct {
	File  string `yaml:"file"`
	Query string `yaml:"query"`
}

// Connection holds database connection parameters for query lookups.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// LoadProfile reads and parses a YAML profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	p.applyEnv()

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return &p, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (p *Profile) applyEnv() {
	conn := &p.Connection
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST", "")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT", ""); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				conn.Port = n
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB", "")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER", "")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD", "")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE", "", "")
	}
}

// envOr returns the first non-empty value from the given env var names, or
// fallback.
func envOr(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// validate checks the lookup source and, for query lookups, the connection.
func (p *Profile) validate() error {
	if p.Lookup.File != "" && p.Lookup.Query != "" {
		return fmt.Errorf("lookup.file and lookup.query are mutually exclusive")
	}
	if p.Lookup.Query == "" {
		return nil
	}
	conn := &p.Connection
	if conn.Host == "" {
		return fmt.Errorf("connection.host is required for query lookups")
	}
	if conn.Port == 0 {
		conn.Port = 5432
	}
	if conn.Database == "" {
		return fmt.Errorf("connection.database is required for query lookups")
	}
	if conn.User == "" {
		return fmt.Errorf("connection.user is required for query lookups")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = "disable"
	}
	return nil
}
