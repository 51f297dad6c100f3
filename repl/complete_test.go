// Copyright © 2024 The MNL authors

package repl

import (
	"testing"

	"github.com/mnl-lang/mnl/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolCompleter(t *testing.T) {
	tree, err := parser.New().ReadString("test", "(define (double x) (* 2 x)) (defer 'done)")
	require.NoError(t, err)
	defer tree.Release()

	c := newSymbolCompleter()
	c.add(tree.Forms())

	candidates, offset := c.Do([]rune("(de"), 3)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune("fer"), []rune("fine")}, candidates)

	candidates, offset = c.Do([]rune("'do"), 3)
	assert.Equal(t, 2, offset)
	assert.Equal(t, [][]rune{[]rune("ne"), []rune("uble")}, candidates)

	candidates, _ = c.Do([]rune("(zzz"), 4)
	assert.Empty(t, candidates)

	candidates, _ = c.Do([]rune("("), 1)
	assert.Empty(t, candidates)
}
