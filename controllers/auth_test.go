package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "foo@x.com", normalizeEmail("foo@x.com"))
	assert.Equal(t, "foo@x.com", normalizeEmail("Foo@X.com"))
	assert.Equal(t, "foo@x.com", normalizeEmail("  foo@x.com \n"))
	assert.Equal(t, "foo@x.com", normalizeEmail("\tFOO@X.COM "))
}
