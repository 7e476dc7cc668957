package contact

import "time"

// NoticeKind tells success notices from error notices.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Default display durations.
const (
	DefaultValidationNotice = 4 * time.Second
	DefaultResultNotice     = 5 * time.Second
)

// Visitor facing notice texts.
const (
	TextSent       = "Message sent successfully!"
	TextSendFailed = "Failed to send message. Please try again."
)

var validationTexts = map[string]string{
	ReasonMissingName:    "Please enter your name.",
	ReasonInvalidEmail:   "Please enter a valid email.",
	ReasonMissingMessage: "Please enter a message.",
}

// Notice is a transient banner shown after a submit attempt.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Text      string     `json:"text"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the notice should no longer be shown at now.
func (n Notice) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

func validationText(reason string) string {
	if text, ok := validationTexts[reason]; ok {
		return text
	}
	return reason
}
