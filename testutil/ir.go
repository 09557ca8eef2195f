// Package testutil provides shared test helpers for diffing and comparing
// the type-checker's and monomorphizer's intermediate representations.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/churf-lang/churf/internal/types"
)

// RequireSameType fails the test with a structural diff if want and got
// are not the same Type tree. types.Type's Equals method checks syntactic
// equality but doesn't explain a mismatch; go-cmp's diff does.
func RequireSameType(t *testing.T, want, got types.Type) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		require.Failf(t, "type mismatch", "(-want +got):\n%s", diff)
	}
}

// RequireWellFormed fails the test if ty is not well-formed in context c —
// a sanity check for types built directly by test fixtures.
func RequireWellFormed(tst *testing.T, c types.Context, ty types.Type) {
	tst.Helper()
	require.NoError(tst, types.WellFormed(c, ty), "expected %s to be well-formed in %s", ty, c)
}
