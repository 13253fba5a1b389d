// Package media defines shared types for the ytserver relay.
package media

import "fmt"

// Mirror identifies an upstream video-hosting mirror.
type Mirror string

const (
	S1 Mirror = "s1"
	S2 Mirror = "s2"
)

func (m Mirror) String() string {
	return string(m)
}

// ParseMirror maps a mirror name to a known Mirror.
func ParseMirror(name string) (Mirror, error) {
	switch Mirror(name) {
	case S1, S2:
		return Mirror(name), nil
	default:
		return "", fmt.Errorf("unknown mirror %q (valid: s1, s2)", name)
	}
}

// Field names as they appear in the JSON output.
const (
	FieldStreamURL    = "stream_url"
	FieldVideoID      = "videoId"
	FieldChannelID    = "channelId"
	FieldChannelName  = "channelName"
	FieldChannelImage = "channelImage"
	FieldVideoTitle   = "videoTitle"
	FieldVideoDes     = "videoDes"
)

// VideoRecord is the normalized video metadata returned by every mirror.
// It is only ever built fully populated.
type VideoRecord struct {
	StreamURL    string `json:"stream_url"`
	VideoID      string `json:"videoId"`
	ChannelID    string `json:"channelId"`
	ChannelName  string `json:"channelName"`
	ChannelImage string `json:"channelImage"`
	VideoTitle   string `json:"videoTitle"`
	VideoDes     string `json:"videoDes"`
}

// NewVideoRecord builds a record from extracted field values keyed by JSON name.
func NewVideoRecord(videoID string, values map[string]string) *VideoRecord {
	return &VideoRecord{
		StreamURL:    values[FieldStreamURL],
		VideoID:      videoID,
		ChannelID:    values[FieldChannelID],
		ChannelName:  values[FieldChannelName],
		ChannelImage: values[FieldChannelImage],
		VideoTitle:   values[FieldVideoTitle],
		VideoDes:     values[FieldVideoDes],
	}
}
