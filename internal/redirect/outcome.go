package redirect

// Reason classifies the result of resolving a short code.
type Reason string

const (
	// ReasonRedirect means the code resolved and the click was recorded.
	ReasonRedirect Reason = "redirect"
	// ReasonNotFound means no record exists for the code.
	ReasonNotFound Reason = "not_found"
	// ReasonExpired means the record exists but is past its expiration.
	ReasonExpired Reason = "expired"
	// ReasonLimitReached means the record has used up its click ceiling.
	ReasonLimitReached Reason = "limit_reached"
	// ReasonError means the store failed; the redirect did not happen.
	ReasonError Reason = "error"
)

// Outcome is the tagged result of a redirect resolution. Callers switch on
// Reason rather than unwrapping errors.
type Outcome struct {
	Reason    Reason
	TargetURL string
	Err       error
}

// Gone reports whether the outcome is presented to callers as not found.
// Expired and exhausted records are deliberately indistinguishable from
// missing ones on the wire; Reason keeps them apart for logs and tests.
func (o Outcome) Gone() bool {
	switch o.Reason {
	case ReasonNotFound, ReasonExpired, ReasonLimitReached:
		return true
	default:
		return false
	}
}
