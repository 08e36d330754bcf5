package recordmodel

import (
	"fmt"
	"io"
	"strings"
)

// String renders the record as a fixed-indent tree. This is a debugging
// aid for tests and golden output only, not part of the wire contract.
func (r *Record) String() string {
	var b strings.Builder
	_ = r.WriteIndent(&b, 0)
	return b.String()
}

// WriteIndent writes a fixed-indent tree representation of the record to
// w, starting at the given depth (two spaces per level).
func (r *Record) WriteIndent(w io.Writer, depth int) error {
	pad := strings.Repeat("  ", depth)
	for _, e := range r.entries {
		if err := writeEntry(w, pad, e.key, e.value, depth); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(w io.Writer, pad, key string, value any, depth int) error {
	switch v := value.(type) {
	case nil:
		_, err := fmt.Fprintf(w, "%s%s: null\n", pad, key)
		return err
	case *Record:
		if _, err := fmt.Fprintf(w, "%s%s:\n", pad, key); err != nil {
			return err
		}
		return v.WriteIndent(w, depth+1)
	case []any:
		if _, err := fmt.Fprintf(w, "%s%s: [\n", pad, key); err != nil {
			return err
		}
		childPad := strings.Repeat("  ", depth+1)
		for i, elem := range v {
			if err := writeEntry(w, childPad, fmt.Sprintf("[%d]", i), elem, depth+1); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s]\n", pad)
		return err
	default:
		_, err := fmt.Fprintf(w, "%s%s: %v\n", pad, key, v)
		return err
	}
}
