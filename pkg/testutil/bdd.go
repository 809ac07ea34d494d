package testutil

import (
	"strings"
	"testing"
)

// Given, When, Then and And nest subtests so a failing eligibility rule is
// reported with its whole path, e.g.
// "Given_a_BRP_holder/When_checked_on_the_cutoff_day/Then_the_check_is_blocked".
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

// And adds a further outcome under the same When.
func And(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "And", desc, fn)
}

// Case is one When/Then pair of a Rule.
type Case struct {
	When string
	Then string
	Run  func(t *testing.T)
}

// Rule runs every case under a shared Given. Use it when the cases only differ
// in the date or document they evaluate.
func Rule(t *testing.T, given string, cases []Case) {
	t.Helper()
	Given(t, given, func(t *testing.T) {
		for _, c := range cases {
			When(t, c.When, func(t *testing.T) {
				Then(t, c.Then, c.Run)
			})
		}
	})
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(keyword+" "+strings.TrimSpace(desc), fn)
}
