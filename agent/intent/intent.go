// Package intent maps free-form support queries to one of a fixed set of
// cases. Rules are checked in declaration order and the first match wins.
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

type Case string

const (
	CaseCustomerLookup   Case = "customer_lookup"
	CaseAccountHelp      Case = "account_help"
	CaseBillingCancel    Case = "billing_cancel"
	CaseTicketReport     Case = "ticket_report"
	CaseUpgrade          Case = "upgrade"
	CaseRefundEscalation Case = "refund_escalation"
	CaseEmailAndHistory  Case = "email_and_history"
	CaseFallback         Case = "fallback"
)

const (
	DefaultCustomerID int64 = 1
	DefaultEmail            = "new@example.com"
)

var (
	customerIDPattern = regexp.MustCompile(`(?i)(?:id|customer)\s*(\d+)`)
	emailPattern      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// Classification is the result of Classify. CustomerID and Email hold what
// was found in the text; ResolvedID and ResolvedEmail apply the defaults used
// by the flows that need a value even when none was given.
type Classification struct {
	Case       Case
	CustomerID int64
	HasID      bool
	Email      string
	HasEmail   bool
}

// ResolvedID falls back to DefaultCustomerID only when the text had no id.
// An explicit 0 is kept.
func (c Classification) ResolvedID() int64 {
	if c.HasID {
		return c.CustomerID
	}
	return DefaultCustomerID
}

func (c Classification) ResolvedEmail() string {
	if c.HasEmail {
		return c.Email
	}
	return DefaultEmail
}

type rule struct {
	c     Case
	match func(text string, hasID bool) bool
}

var rules = []rule{
	{CaseCustomerLookup, func(t string, id bool) bool { return id && strings.Contains(t, "get customer information") }},
	{CaseAccountHelp, func(t string, id bool) bool { return id && strings.Contains(t, "help with my account") }},
	{CaseBillingCancel, func(t string, _ bool) bool { return strings.Contains(t, "cancel") && strings.Contains(t, "billing") }},
	{CaseTicketReport, func(t string, _ bool) bool {
		return strings.Contains(t, "active customers") && strings.Contains(t, "open tickets")
	}},
	{CaseUpgrade, func(t string, id bool) bool { return id && strings.Contains(t, "upgrading my account") }},
	{CaseRefundEscalation, func(t string, _ bool) bool {
		return strings.Contains(t, "charged twice") || strings.Contains(t, "double charged")
	}},
	{CaseEmailAndHistory, func(t string, _ bool) bool {
		return strings.Contains(t, "update my email") && strings.Contains(t, "ticket history")
	}},
}

// Classify is pure: the same text always yields the same Classification.
func Classify(text string) Classification {
	out := Classification{Case: CaseFallback}
	out.CustomerID, out.HasID = ExtractCustomerID(text)
	out.Email, out.HasEmail = ExtractEmail(text)

	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.match(lower, out.HasID) {
			out.Case = r.c
			break
		}
	}
	return out
}

// ExtractCustomerID returns the first number following "id" or "customer".
func ExtractCustomerID(text string) (int64, bool) {
	m := customerIDPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ExtractEmail returns the first email-shaped token, as written.
func ExtractEmail(text string) (string, bool) {
	m := emailPattern.FindString(text)
	return m, m != ""
}
