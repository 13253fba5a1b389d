package extract

import (
	"html"
	"regexp"
	"strings"
)

// Transform post-processes a raw extracted value.
type Transform func(string) string

const (
	channelImageHost   = "https://yt3.ggpht.com/"
	channelImageSuffix = "=s512-c-k-c0x00ffffff-no-rj"
)

var siteSuffix = regexp.MustCompile(`\s*\|[^|]*$`)

// UnescapeHTML decodes HTML entities such as &amp; and &#39;.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// TrimSpace removes surrounding whitespace.
func TrimSpace(s string) string {
	return strings.TrimSpace(s)
}

// StripSiteSuffix drops a trailing "| Suffix" delimiter and trims whitespace.
// "Example Channel | Invidious" -> "Example Channel"
func StripSiteSuffix(s string) string {
	return strings.TrimSpace(siteSuffix.ReplaceAllString(s, ""))
}

// DecodeNewlines turns literal backslash-n sequences into line breaks.
func DecodeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// ChannelImageURL expands an image-path fragment into a 512px channel avatar URL.
func ChannelImageURL(fragment string) string {
	return channelImageHost + fragment + channelImageSuffix
}
