package entity

// FlashKind classifies flash notice presentation.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// FlashNotice is a one-time notice attached to a redirect, shown on the
// next page render and then discarded.
type FlashNotice struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// NewFlashSuccess is a convenience constructor for success notices.
func NewFlashSuccess(message string) FlashNotice {
	return FlashNotice{Kind: FlashSuccess, Message: message}
}

// NewFlashError is a convenience constructor for error notices.
func NewFlashError(message string) FlashNotice {
	return FlashNotice{Kind: FlashError, Message: message}
}
