package beancount

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Ledger is an append-only accumulator of rendered directive blocks.
// Blocks keep their append order; the final artifact is their concatenation.
type Ledger struct {
	blocks []string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends a rendered directive to the ledger.
func (l *Ledger) Add(directive fmt.Stringer) {
	l.blocks = append(l.blocks, directive.String())
}

// Len returns the number of accumulated blocks.
func (l *Ledger) Len() int {
	return len(l.blocks)
}

// String concatenates all blocks in append order, separated by blank lines.
func (l *Ledger) String() string {
	if len(l.blocks) == 0 {
		return ""
	}
	return strings.Join(l.blocks, "\n\n") + "\n"
}

// WriteFile writes the ledger artifact to a single file, preceded by a
// generated header comment. The parent directory must exist.
func (l *Ledger) WriteFile(path string) error {
	content := l.header() + l.String()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}

	return nil
}

// header generates the artifact header comment.
func (l *Ledger) header() string {
	now := time.Now().Format(time.RFC3339)
	return fmt.Sprintf("; Exported from Actual Budget\n; Generated at %s\n\n", now)
}
