package cmd

import (
	"fmt"
	"strings"
)

// UnknownPageError indicates an audit request for a page outside the registry.
type UnknownPageError struct {
	Key   string
	Valid []string
}

func (e *UnknownPageError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown page %q", e.Key)
	}
	return fmt.Sprintf("unknown page %q (valid pages: %s)", e.Key, strings.Join(e.Valid, ", "))
}

// NoSessionError signals that a command needing an existing session found none.
type NoSessionError struct{}

func (e *NoSessionError) Error() string {
	return "no active audit session found (run 'storeaudit init' first)"
}
