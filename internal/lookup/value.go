package lookup

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// renderValue converts a query result value into a TSV field.
// NULL is rendered as the empty string.
func renderValue(val any) string {
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []byte:
		// bytea: hex-encoded with \x prefix
		return `\x` + hex.EncodeToString(v)
	case time.Time:
		return escapeField(v.Format("2006-01-02 15:04:05.999999-07"))
	case string:
		return escapeField(v)
	case fmt.Stringer:
		return escapeField(v.String())
	default:
		return escapeField(fmt.Sprintf("%v", v))
	}
}

// escapeField keeps the tab-is-the-only-delimiter contract intact for
// values that arrive from a database instead of a tab-delimited file.
func escapeField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
