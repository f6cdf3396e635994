package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePincode = regexp.MustCompile(`^[0-9]{6}$`)
	rePhone   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Pincode validates an Indian 6-digit postal code.
func Pincode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, rePincode.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// ID validates a simple resource identifier (uuid/ulid style).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Text trims and enforces a non-empty value within max bytes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (max > 0 && len(s) > max) {
		return s, false
	}
	return s, true
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 6 && l <= 72
}

// NormalizeTag lowercases and trims a tag name; tags are globally unique by
// this normalized form.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func oneOf(s string, opts ...string) bool {
	for _, o := range opts {
		if s == o {
			return true
		}
	}
	return false
}

func StuffType(s string) bool {
	return oneOf(s, "BOOK", "STATIONERY", "ELECTRONICS", "NOTES", "OTHER")
}

func Condition(s string) bool {
	return oneOf(s, "NEW", "LIKE_NEW", "GOOD", "FAIR", "POOR")
}

func OfferType(s string) bool {
	return oneOf(s, "SELL", "LEND", "RENT", "SHARE", "EXCHANGE")
}

func BookType(s string) bool {
	return s == "" || oneOf(s, "TEXTBOOK", "REFERENCE", "NOVEL", "JOURNAL", "MAGAZINE", "WORKBOOK", "GUIDE")
}

func StationeryType(s string) bool {
	return s == "" || oneOf(s, "WRITING", "DRAWING", "CALCULATION", "STORAGE", "CRAFT", "OTHER")
}

func VisibilityScope(s string) bool {
	return oneOf(s, "PUBLIC", "COLLEGE", "CLASS")
}

func ReviewType(s string) bool {
	return oneOf(s, "UNIVERSAL_STUFF", "THANK_YOU_MESSAGE", "USER_RATING")
}

func TradeStatus(s string) bool {
	return oneOf(s, "PENDING", "ACCEPTED", "REJECTED", "IN_PROGRESS", "COMPLETED", "OVERDUE", "CANCELLED")
}

func UrgencyLevel(s string) bool {
	return oneOf(s, "LOW", "MEDIUM", "HIGH", "URGENT")
}

func RequestStatus(s string) bool {
	return oneOf(s, "OPEN", "MATCHED", "FULFILLED", "CLOSED", "EXPIRED")
}

func ReminderType(s string) bool {
	return oneOf(s, "RETURN_DUE", "PICKUP_DUE", "OFFER_EXPIRY", "PAYMENT_DUE", "CUSTOM")
}
