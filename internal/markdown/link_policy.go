package markdown

import (
	"net/url"
	"strings"

	textutil "github.com/kk-code-lab/chatmd/internal/textutil"
)

// blockedLinkSchemes can run script or reach local resources when clicked.
var blockedLinkSchemes = map[string]struct{}{
	"javascript": {},
	"vbscript":   {},
	"data":       {},
	"file":       {},
}

// sanitizeLinkDestination vets an href or img src. Empty and relative
// references pass, as does any scheme not in blockedLinkSchemes. Protocol-
// relative hosts and destinations hiding control or bidi runes are refused.
func sanitizeLinkDestination(dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return "", true
	}
	if textutil.HasControlRunes(dest) || textutil.HasFormattingRunes(dest) {
		return "", false
	}
	if strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, `\\`) {
		return "", false
	}
	if _, blocked := blockedLinkSchemes[linkScheme(dest)]; blocked {
		return "", false
	}
	return dest, true
}

// linkScheme returns the lower-cased scheme of dest. Destinations url.Parse
// rejects (a bare % in the path, say) fall back to the text before the first
// colon that precedes any of "/?#".
func linkScheme(dest string) string {
	if u, err := url.Parse(dest); err == nil {
		return strings.ToLower(u.Scheme)
	}
	end := strings.IndexAny(dest, ":/?#")
	if end <= 0 || dest[end] != ':' {
		return ""
	}
	return strings.ToLower(dest[:end])
}
