package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenText(t *testing.T) {
	input := []rune("abc+def")
	tok := Token{Kind: TokSym, Start: 0, Len: 3}
	assert.Equal(t, "abc", tok.text(input))

	tok2 := Token{Kind: TokOp, Start: 3, Len: 1}
	assert.Equal(t, "+", tok2.text(input))
}
