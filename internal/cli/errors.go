package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type indexError struct {
	raw string
	len int
}

func (e indexError) Error() string {
	if e.len == 0 {
		return fmt.Sprintf("index out of range: %s (the list is empty)", e.raw)
	}
	return fmt.Sprintf("index out of range: %s (valid: 0..%d)", e.raw, e.len-1)
}

// parseIndex parses a 0-based index and checks it against n items.
func parseIndex(raw string, n int) (int, error) {
	ix, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: want a non-negative integer", raw)
	}
	if ix < 0 || ix >= n {
		return 0, indexError{raw: raw, len: n}
	}
	return ix, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
