package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertViewContains fails t when the rendered view lacks text
func AssertViewContains(t *testing.T, view, text string) bool {
	t.Helper()
	return assert.Containsf(t, view, text, "view:\n%s", view)
}

// AssertViewNotContains fails t when the rendered view shows text
func AssertViewNotContains(t *testing.T, view, text string) bool {
	t.Helper()
	return assert.NotContainsf(t, view, text, "view:\n%s", view)
}
