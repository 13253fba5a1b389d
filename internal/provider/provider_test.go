package provider

import (
	"context"
	"testing"

	"github.com/Tenakskd/ytserver-v2/internal/config"
	"github.com/Tenakskd/ytserver-v2/internal/media"
)

func TestFromConfig(t *testing.T) {
	u := newUpstream(t, "watch_s2.html", nil)

	cfg := config.Default()
	cfg.S1.WatchURL = u.URL + "/watch"
	cfg.S1.APIURL = u.URL + "/api"
	cfg.S2.WatchURL = u.URL + "/watch"

	providers, err := FromConfig(cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("FromConfig() error: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(providers))
	}
	for m, p := range providers {
		if p.Mirror() != m {
			t.Errorf("providers[%s].Mirror() = %s", m, p.Mirror())
		}
	}

	rec, err := providers[media.S2].Resolve(context.Background(), "xyz")
	if err != nil {
		t.Fatalf("s2 Resolve() error: %v", err)
	}
	if rec.VideoID != "xyz" {
		t.Errorf("VideoID = %q, want xyz", rec.VideoID)
	}
	if u.apiHits.Load() != 0 {
		t.Errorf("s2 called the API %d times", u.apiHits.Load())
	}
}

func TestFromConfigRejectsUnknownVariant(t *testing.T) {
	cfg := config.Default()
	cfg.S1.Variant = "merged"

	if _, err := FromConfig(cfg); err == nil {
		t.Error("FromConfig() expected error for unknown variant")
	}
}
