package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"entries"`, quoteIdentifier("entries"))
	assert.Equal(t, `"odd table"`, quoteIdentifier("odd table"))
	// embedded quotes cannot terminate the quoted identifier
	assert.Equal(t, `"x"");DROP TABLE entries;--"`, quoteIdentifier(`x");DROP TABLE entries;--`))
}
