package titlestream

import "strings"

// Scheme is the locator prefix recognized by this stream.
const Scheme = "dvd:"

// AutoTitle requests the first title on the disc.
const AutoTitle = -1

// MaxTitle is the largest accepted title number.
const MaxTitle = 99999

// StripScheme removes a leading dvd: prefix from locator, yielding the bare
// disc path. Locators are not URLs; there is no authority component, so a
// plain prefix strip is the whole job.
func StripScheme(locator string) string {
	trimmed := strings.TrimSpace(locator)
	if len(trimmed) >= len(Scheme) && strings.EqualFold(trimmed[:len(Scheme)], Scheme) {
		return trimmed[len(Scheme):]
	}
	return trimmed
}

// titleInRange reports whether a requested title is in the accepted option
// range of -1 through MaxTitle. Values below 1 select the first title.
func titleInRange(title int) bool {
	return title >= AutoTitle && title <= MaxTitle
}
