package provider

import (
	"fmt"
	"strings"

	"github.com/Tenakskd/ytserver-v2/internal/extract"
	"github.com/Tenakskd/ytserver-v2/internal/httputil"
	"github.com/Tenakskd/ytserver-v2/internal/media"
)

// Document names used as rule sources.
const (
	pageDoc = "page"
	apiDoc  = "api"
)

// Variant selects which document s1 prefers for the description and the
// channel image. The other document is only consulted as a fallback.
type Variant string

const (
	// VariantPage takes the description from the page and the image from the API.
	VariantPage Variant = "page"
	// VariantAPI takes the description from the API and derives the image from the page.
	VariantAPI Variant = "api"
)

// ParseVariant maps a config value to a Variant. Empty means VariantPage.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(s)) {
	case "", VariantPage:
		return VariantPage, nil
	case VariantAPI:
		return VariantAPI, nil
	default:
		return "", fmt.Errorf("unknown variant %q (valid: page, api)", s)
	}
}

var (
	streamURLRule = extract.Rule{
		Source:     pageDoc,
		Pattern:    extract.OGVideo,
		Transforms: []extract.Transform{extract.UnescapeHTML, extract.TrimSpace},
	}
	channelNameRule = extract.Rule{
		Source:     pageDoc,
		Pattern:    extract.OGSiteName,
		Transforms: []extract.Transform{extract.UnescapeHTML, extract.StripSiteSuffix},
	}
	titleRule = extract.Rule{
		Source:     pageDoc,
		Pattern:    extract.OGTitle,
		Transforms: []extract.Transform{extract.UnescapeHTML, extract.TrimSpace},
	}
	pageDescriptionRule = extract.Rule{
		Source:     pageDoc,
		Pattern:    extract.OGDescription,
		Transforms: []extract.Transform{extract.UnescapeHTML},
	}
	pageImageRule = extract.Rule{
		Source:     pageDoc,
		Pattern:    extract.ImageFragment,
		Transforms: []extract.Transform{extract.ChannelImageURL},
	}
	channelLinkRule = extract.Rule{
		Source:   pageDoc,
		Selector: extract.ChannelLinkSelector,
		Attr:     "href",
		Pattern:  extract.ChannelHref,
	}

	apiChannelIDRule    = extract.Rule{Source: apiDoc, JSONKey: "channelId"}
	apiChannelImageRule = extract.Rule{Source: apiDoc, JSONKey: "channelImage"}
	apiDescriptionRule  = extract.Rule{Source: apiDoc, JSONKey: "videoDes"}
)

func rules(r ...extract.Rule) []extract.Rule {
	return r
}

// S1Plan is the field table for mirror s1: page markup plus the metadata API.
func S1Plan(v Variant) extract.Plan {
	description := rules(pageDescriptionRule, apiDescriptionRule)
	image := rules(apiChannelImageRule, pageImageRule)
	if v == VariantAPI {
		description = rules(apiDescriptionRule, pageDescriptionRule)
		image = rules(pageImageRule, apiChannelImageRule)
	}

	return extract.Plan{
		{Name: media.FieldStreamURL, Rules: rules(streamURLRule)},
		{Name: media.FieldChannelID, Rules: rules(apiChannelIDRule)},
		{Name: media.FieldChannelName, Rules: rules(channelNameRule)},
		{Name: media.FieldChannelImage, Rules: image},
		{Name: media.FieldVideoTitle, Rules: rules(titleRule)},
		{Name: media.FieldVideoDes, Rules: description},
	}
}

// S2Plan is the field table for mirror s2, which reads everything from the page.
func S2Plan() extract.Plan {
	description := pageDescriptionRule
	description.Transforms = []extract.Transform{extract.UnescapeHTML, extract.DecodeNewlines}

	return extract.Plan{
		{Name: media.FieldStreamURL, Rules: rules(streamURLRule)},
		{Name: media.FieldChannelID, Rules: rules(channelLinkRule)},
		{Name: media.FieldChannelName, Rules: rules(channelNameRule)},
		{Name: media.FieldChannelImage, Rules: rules(pageImageRule)},
		{Name: media.FieldVideoTitle, Rules: rules(titleRule)},
		{Name: media.FieldVideoDes, Rules: rules(description)},
	}
}

func watchEndpoint(watchURL string) Endpoint {
	return Endpoint{
		Name:   pageDoc,
		Format: FormatHTML,
		URL: func(videoID string) string {
			return httputil.WithQuery(watchURL, "v", videoID)
		},
	}
}

func apiEndpoint(apiURL string) Endpoint {
	return Endpoint{
		Name:   apiDoc,
		Format: FormatJSON,
		URL: func(videoID string) string {
			return httputil.BuildURL(apiURL, videoID)
		},
	}
}

// NewS1 creates the resolver for mirror s1, which fetches the watch page
// and the metadata API concurrently.
func NewS1(watchURL, apiURL string, v Variant, opts ...Option) *Resolver {
	return New(media.S1, FetchPlan{watchEndpoint(watchURL), apiEndpoint(apiURL)}, S1Plan(v), opts...)
}

// NewS2 creates the resolver for mirror s2, which fetches only the watch page.
func NewS2(watchURL string, opts ...Option) *Resolver {
	return New(media.S2, FetchPlan{watchEndpoint(watchURL)}, S2Plan(), opts...)
}
