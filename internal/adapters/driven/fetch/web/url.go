package web

import (
	"net/url"
	"strings"
)

const freediumPrefix = "https://freedium.cfd/https://medium.com"

// TranslateMediumURL routes Medium articles through the Freedium
// mirror. The rebuilt URL keeps only the path and query; custom
// publication hosts collapse onto medium.com, which is where Freedium
// resolves them. Non-Medium URLs pass through unchanged.
func TranslateMediumURL(rawURL string) string {
	if !strings.Contains(rawURL, "medium.com") {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	pathAndQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}

	return freediumPrefix + pathAndQuery
}
