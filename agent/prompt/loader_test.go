package prompt

import (
	"strings"
	"testing"
)

func TestLoadReplySet(t *testing.T) {
	t.Parallel()

	set := LoadReplySet()
	if !strings.HasPrefix(set.Fallback, "I can assist with account questions") {
		t.Fatalf("unexpected fallback: %q", set.Fallback)
	}
	if strings.Count(set.BillingCancel, "\n") != 1 {
		t.Fatalf("billing script should be two lines: %q", set.BillingCancel)
	}
	if !strings.HasSuffix(set.AllClear, "✓") {
		t.Fatalf("unexpected all-clear text: %q", set.AllClear)
	}
	for _, s := range []string{set.Fallback, set.BillingCancel, set.AllClear} {
		if s != strings.TrimSpace(s) {
			t.Fatalf("reply not trimmed: %q", s)
		}
	}
}
