package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// errOut is where error reports are written.
var errOut io.Writer = os.Stderr

// ShowError prints a framed error report without exiting.
func ShowError(context string, err error) {
	fmt.Fprintf(errOut, "\n---------------------------------------------------------\n")
	fmt.Fprintf(errOut, "🚨 HITSCAN ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(errOut, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(errOut, "---------------------------------------------------------\n")
}

// Die is the unified exit strategy: report and exit with status 1.
func Die(context string, err error) {
	ShowError(context, err)
	os.Exit(1)
}

// EnvOr returns the value of key, or def when it is unset or empty.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// IsWithin reports whether path equals dir or lies below it. Both are
// resolved to absolute paths first.
func IsWithin(path, dir string) (bool, error) {
	p, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	d, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	sep := string(filepath.Separator)
	return p == d || strings.HasPrefix(p+sep, d+sep), nil
}
