package tests

import (
	"strings"
	"testing"

	"github.com/aretw0/statesync/pkg/ports"
	"github.com/aretw0/statesync/pkg/state"
)

// LocatorContractTest is a reusable test suite that verifies if an adapter complies with ports.Locator.
// expected lists the states the locator was seeded with, in order.
func LocatorContractTest(t *testing.T, locator ports.Locator, expected []state.State) {
	t.Helper()

	t.Run("States", func(t *testing.T) {
		got := locator.States()
		if len(got) != len(expected) {
			t.Fatalf("expected %d states, got %d", len(expected), len(got))
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("state %d: got %s, want %s", i, got[i].Kind(), expected[i].Kind())
			}
		}
	})

	t.Run("Locate_CaseInsensitive", func(t *testing.T) {
		for _, s := range expected {
			name := s.Kind().String()
			for _, query := range []string{name, strings.ToLower(name), strings.ToUpper(name)} {
				found, ok := locator.Locate(query)
				if !ok {
					t.Fatalf("expected %q to be located", query)
				}
				if found.Kind() != s.Kind() {
					t.Errorf("Locate(%q) returned %s, want %s", query, found.Kind(), s.Kind())
				}
			}
		}
	})

	t.Run("Locate_NotFound", func(t *testing.T) {
		if _, ok := locator.Locate("non-existent-state"); ok {
			t.Error("expected miss for non-existent state")
		}
	})
}
