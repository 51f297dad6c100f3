// Copyright © 2024 The MNL authors

package repl

import (
	"sort"
	"strings"
	"sync"

	"github.com/mnl-lang/mnl/astutil"
	"github.com/mnl-lang/mnl/value"
)

// symbolCompleter implements readline.AutoCompleter by offering the symbols
// read so far in the session.
type symbolCompleter struct {
	mu      sync.Mutex
	symbols map[string]bool
}

func newSymbolCompleter() *symbolCompleter {
	return &symbolCompleter{symbols: make(map[string]bool)}
}

// add records every symbol in forms.
func (c *symbolCompleter) add(forms []value.Node) {
	names := astutil.Symbols(forms)
	c.mu.Lock()
	defer c.mu.Unlock()
	for name := range names {
		c.symbols[name] = true
	}
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a delimiter).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '\'' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []string
	for name := range c.symbols {
		if strings.HasPrefix(name, prefix) && name != prefix {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}
