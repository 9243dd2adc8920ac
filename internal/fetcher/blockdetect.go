package fetcher

import (
	"net/http"
	"strings"
)

// BlockType names the kind of anti-bot page a response looks like.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
)

// shellMaxBytes bounds the size of a page treated as a JavaScript-only shell.
// The real map page is far larger.
const shellMaxBytes = 2000

// challengeSignatures are lowercase phrases that only appear on interstitial
// challenge pages. A bare "captcha" is not enough: sites embed reCAPTCHA in
// contact forms next to real content.
var challengeSignatures = []struct {
	kind    BlockType
	phrases []string
}{
	{BlockCloudflare, []string{
		"checking your browser",
		"cf-browser-verification",
		"/cdn-cgi/challenge-platform/",
	}},
	{BlockCaptcha, []string{
		"verify you are human",
		"are you a robot",
		"confirm you are not a robot",
		"unusual traffic from your computer",
		"captcha-delivery.com",
	}},
}

// DetectBlockHeaders reports whether a 403 or 503 response came from a
// Cloudflare edge.
func DetectBlockHeaders(resp *http.Response) (bool, BlockType) {
	if resp == nil {
		return false, BlockNone
	}
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusServiceUnavailable {
		return false, BlockNone
	}
	h := resp.Header
	if h.Get("cf-ray") != "" || h.Get("cf-cache-status") != "" || strings.EqualFold(h.Get("server"), "cloudflare") {
		return true, BlockCloudflare
	}
	return false, BlockNone
}

// DetectBlock guesses whether a map page that yielded no marker data was an
// anti-bot interstitial instead of the map. It matches challenge phrases, and
// treats a tiny page that only asks for JavaScript or redirects as a shell.
func DetectBlock(body string) (bool, BlockType) {
	lower := strings.ToLower(body)

	for _, sig := range challengeSignatures {
		for _, phrase := range sig.phrases {
			if strings.Contains(lower, phrase) {
				return true, sig.kind
			}
		}
	}
	if strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge") {
		return true, BlockCloudflare
	}

	if len(body) < shellMaxBytes {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return true, BlockJSShell
		}
		if strings.Contains(lower, `http-equiv="refresh"`) {
			return true, BlockJSShell
		}
	}
	return false, BlockNone
}
