package intent

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
		want  Case
	}{
		{name: "lookup", query: "Get customer information for ID 1", want: CaseCustomerLookup},
		{name: "lookup without id", query: "Get customer information please", want: CaseFallback},
		{name: "account help", query: "I need help with my account, customer ID 1", want: CaseAccountHelp},
		{name: "account help wins over billing", query: "I need help with my account, customer ID 1, but I also want to cancel and have billing issues", want: CaseAccountHelp},
		{name: "account help without id falls through", query: "I need help with my account, I want to cancel because of billing", want: CaseBillingCancel},
		{name: "billing cancel", query: "I want to cancel my subscription but I'm having billing issues", want: CaseBillingCancel},
		{name: "ticket report", query: "Show me all active customers who have open tickets", want: CaseTicketReport},
		{name: "upgrade", query: "I'm customer 2 and interested in upgrading my account", want: CaseUpgrade},
		{name: "refund", query: "I was charged twice, please refund immediately!", want: CaseRefundEscalation},
		{name: "refund variant", query: "I got DOUBLE CHARGED", want: CaseRefundEscalation},
		{name: "email and history", query: "Update my email to new@email.com and show my ticket history for customer 1", want: CaseEmailAndHistory},
		{name: "fallback", query: "What's the weather like?", want: CaseFallback},
		{name: "empty", query: "", want: CaseFallback},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tc.query).Case; got != tc.want {
				t.Fatalf("Classify(%q) = %s, want %s", tc.query, got, tc.want)
			}
		})
	}
}

func TestExtractCustomerID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text   string
		want   int64
		wantOK bool
	}{
		{text: "customer ID 42", want: 42, wantOK: true},
		{text: "Customer12", want: 12, wantOK: true},
		{text: "id 7 and customer 9", want: 7, wantOK: true},
		{text: "no number here", wantOK: false},
		{text: "ticket 55", wantOK: false},
	}
	for _, tc := range cases {
		got, ok := ExtractCustomerID(tc.text)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ExtractCustomerID(%q) = %d, %v; want %d, %v", tc.text, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestClassifyExtractsValuesAndDefaults(t *testing.T) {
	t.Parallel()

	got := Classify("Please UPDATE my email to Jane.Doe@Mail.example.com and show ticket history")
	if got.Case != CaseEmailAndHistory {
		t.Fatalf("unexpected case: %s", got.Case)
	}
	if !got.HasEmail || got.Email != "Jane.Doe@Mail.example.com" {
		t.Fatalf("email should be taken from the original text, got %q", got.Email)
	}
	if got.HasID || got.ResolvedID() != DefaultCustomerID {
		t.Fatalf("expected default id, got %+v", got)
	}

	got = Classify("I was charged twice on customer 5")
	if got.ResolvedID() != 5 {
		t.Fatalf("ResolvedID() = %d, want 5", got.ResolvedID())
	}
	if got.ResolvedEmail() != DefaultEmail {
		t.Fatalf("ResolvedEmail() = %s", got.ResolvedEmail())
	}
}

func TestResolvedIDKeepsExplicitZero(t *testing.T) {
	t.Parallel()

	got := Classify("I was charged twice, customer 0")
	if got.Case != CaseRefundEscalation {
		t.Fatalf("unexpected case: %s", got.Case)
	}
	if !got.HasID || got.ResolvedID() != 0 {
		t.Fatalf("explicit id 0 should be kept, got %+v resolved %d", got, got.ResolvedID())
	}

	got = Classify("I was charged twice")
	if got.HasID || got.ResolvedID() != DefaultCustomerID {
		t.Fatalf("missing id should default to %d, got %d", DefaultCustomerID, got.ResolvedID())
	}
}
