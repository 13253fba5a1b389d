package extract

import (
	"regexp"
)

// metaContent captures a double-quoted, single-quoted or unquoted attribute value.
const metaContent = `content=(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`

// MetaPattern builds a matcher for <meta property="..." content="..."> tags,
// with the attributes in either order and quoted or not.
// property is a regular expression fragment; use regexp.QuoteMeta for literals.
func MetaPattern(property string) *regexp.Regexp {
	key := `(?:property|name)=(?:["'](?:` + property + `)["']|(?:` + property + `))`
	return regexp.MustCompile(`(?is)` +
		`<meta\s(?:[^>]*?\s)?` + key + `\s(?:[^>]*?\s)?` + metaContent +
		`|<meta\s(?:[^>]*?\s)?` + metaContent + `\s(?:[^>]*?\s)?` + key + `(?:\s|/?>)`)
}

var (
	// OGVideo matches og:video and its :url / :secure_url variants.
	OGVideo = MetaPattern(`og:video(?::url|:secure_url)?`)

	OGSiteName    = MetaPattern(regexp.QuoteMeta("og:site_name"))
	OGTitle       = MetaPattern(regexp.QuoteMeta("og:title"))
	OGDescription = MetaPattern(regexp.QuoteMeta("og:description"))

	// ImageFragment captures the path after /ggpht/ in an embedded channel
	// thumbnail, e.g. /ggpht/ytc/AbCdEf=s48-c-k-c0x00ffffff-no-rj.
	ImageFragment = regexp.MustCompile(`/ggpht/([^"'\s=]+)=s\d+`)

	// ChannelHref captures the id segment of a /channel/<id> link.
	ChannelHref = regexp.MustCompile(`^/channel/([^/?#]+)`)
)

// ChannelLinkSelector picks anchors pointing at a channel page.
const ChannelLinkSelector = `a[href^="/channel/"]`
