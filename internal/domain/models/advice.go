package models

// Horizon is the user's investment timeline. Wire values are short codes;
// Label returns the text shown to the user and sent to the model.
type Horizon string

const (
	HorizonUnderOneYear Horizon = "lt1y"
	HorizonOneToThree   Horizon = "1y3y"
	HorizonThreeToFive  Horizon = "3y5y"
	HorizonFivePlus     Horizon = "5yplus"
	HorizonTenPlus      Horizon = "10yplus"
)

// Label returns the human-readable horizon text.
func (h Horizon) Label() string {
	switch h {
	case HorizonUnderOneYear:
		return "Less than 1 year"
	case HorizonOneToThree:
		return "1-3 years"
	case HorizonThreeToFive:
		return "3-5 years"
	case HorizonFivePlus:
		return "5+ years"
	case HorizonTenPlus:
		return "10+ years"
	}
	return string(h)
}

// AdviceRequest carries one advice interaction's inputs. It is ephemeral:
// built from the HTTP request, consumed by the coach, never stored.
type AdviceRequest struct {
	Portfolio string
	Horizon   Horizon
	Question  string
	Snapshot  *MarketSnapshot
}

// AdviceStatus tags the outcome of an advice request.
type AdviceStatus string

const (
	AdviceGranted       AdviceStatus = "granted"
	AdviceQuotaExceeded AdviceStatus = "quota_exceeded"
	AdviceCooldown      AdviceStatus = "cooldown"
	AdviceMisconfigured AdviceStatus = "misconfigured"
	AdviceUpstreamError AdviceStatus = "upstream_error"
)

// AdviceResult is the structured outcome of an advice request. Presentation
// code branches on Status, never on the shape of Text.
type AdviceResult struct {
	Status      AdviceStatus
	Text        string // set when Status == AdviceGranted
	WaitSeconds int    // set when Status == AdviceCooldown
	Message     string // upstream failure description
}

// Granted builds a granted result.
func Granted(text string) AdviceResult {
	return AdviceResult{Status: AdviceGranted, Text: text}
}

// QuotaExceeded builds a quota-exceeded result.
func QuotaExceeded() AdviceResult {
	return AdviceResult{Status: AdviceQuotaExceeded}
}

// CooldownActive builds a cooldown result with the remaining wait.
func CooldownActive(waitSeconds int) AdviceResult {
	return AdviceResult{Status: AdviceCooldown, WaitSeconds: waitSeconds}
}

// Misconfigured builds a missing-credential result.
func Misconfigured() AdviceResult {
	return AdviceResult{Status: AdviceMisconfigured}
}

// UpstreamError builds a completion-service failure result.
func UpstreamError(message string) AdviceResult {
	return AdviceResult{Status: AdviceUpstreamError, Message: message}
}
