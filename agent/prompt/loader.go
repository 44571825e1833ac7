package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/fallback.txt
	fallbackRaw string

	//go:embed template/billing_cancel.txt
	billingCancelRaw string

	//go:embed template/all_clear.txt
	allClearRaw string
)

// ReplySet holds the fixed replies that do not depend on customer data.
type ReplySet struct {
	Fallback      string
	BillingCancel string
	AllClear      string
}

// LoadReplySet returns a ReplySet with trimmed reply strings.
func LoadReplySet() ReplySet {
	return ReplySet{
		Fallback:      strings.TrimSpace(fallbackRaw),
		BillingCancel: strings.TrimSpace(billingCancelRaw),
		AllClear:      strings.TrimSpace(allClearRaw),
	}
}
