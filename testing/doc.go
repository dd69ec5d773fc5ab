// Package testing provides test utilities for electosim.
//
// It follows Go's convention of shipping testing helpers in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - RequireRollup: Asserts that every parent tally equals the sum of its children
//   - NewSpainFixture: Builds the Ávila/Segovia/Madrid tree used across the test suites
//   - RequireVoteRollup: RequireRollup without root seats, for single global districts
//
// Example usage:
//
//	import (
//	    "testing"
//	    electotest "github.com/edugzlez/electosim/testing"
//	)
//
//	func TestMyConfiguration(t *testing.T) {
//	    fx := electotest.NewSpainFixture(t)
//	    // mutate fx.Tree ...
//	    electotest.RequireRollup(t, fx.Tree)
//	}
package testing
