package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Tenakskd/ytserver-v2/internal/extract"
	"github.com/Tenakskd/ytserver-v2/internal/httputil"
	"github.com/Tenakskd/ytserver-v2/internal/media"
)

// ErrMissingData marks a resolution where a required field could not be extracted.
var ErrMissingData = errors.New("missing data")

// Kind classifies why a resolution failed.
type Kind int

const (
	// KindFetch covers transport errors, non-2xx responses and unparseable bodies.
	KindFetch Kind = iota
	// KindMissingData means every document arrived but a required field was absent.
	KindMissingData
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindMissingData:
		return "missing_data"
	default:
		return "unknown"
	}
}

// ResolveError is the only error a Resolver returns. Its message is fixed
// per mirror; the cause is kept for logs and errors.Is/As.
type ResolveError struct {
	Mirror media.Mirror
	Kind   Kind
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: failed to fetch video data", e.Mirror)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// FetchError reports a failed request to one endpoint of a fetch plan.
type FetchError struct {
	Endpoint string
	URL      string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s (%s): %v", e.Endpoint, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Format is the body type an endpoint returns.
type Format int

const (
	FormatHTML Format = iota
	FormatJSON
)

// Endpoint is one upstream document fetched per resolution. Its Name is the
// Source that extraction rules refer to.
type Endpoint struct {
	Name   string
	Format Format
	URL    func(videoID string) string
}

// FetchPlan lists the documents fetched concurrently for one resolution.
type FetchPlan []Endpoint

// Resolver fetches a plan's documents and extracts a VideoRecord from them.
type Resolver struct {
	mirror media.Mirror
	fetch  FetchPlan
	plan   extract.Plan
	client *http.Client
	log    logrus.FieldLogger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithClient sets the outbound HTTP client.
func WithClient(c *http.Client) Option {
	return func(r *Resolver) { r.client = c }
}

// WithLogger sets the logger used to record failure causes.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Resolver) { r.log = l }
}

// New creates a Resolver for mirror from a fetch plan and a field plan.
func New(mirror media.Mirror, fetch FetchPlan, plan extract.Plan, opts ...Option) *Resolver {
	r := &Resolver{
		mirror: mirror,
		fetch:  fetch,
		plan:   plan,
		client: httputil.NewClient(),
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mirror returns the mirror this resolver reads from.
func (r *Resolver) Mirror() media.Mirror {
	return r.mirror
}

// Resolve fetches every document in the fetch plan and extracts a complete record.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*media.VideoRecord, error) {
	docs, err := r.fetchAll(ctx, videoID)
	if err != nil {
		return nil, r.fail(videoID, KindFetch, err)
	}

	values, err := extract.Extract(docs, r.plan)
	if err != nil {
		var missing *extract.MissingFieldsError
		if errors.As(err, &missing) {
			return nil, r.fail(videoID, KindMissingData, fmt.Errorf("%w: %w", ErrMissingData, err))
		}
		return nil, r.fail(videoID, KindFetch, err)
	}

	return media.NewVideoRecord(videoID, values), nil
}

// fetchAll runs the fetch plan concurrently. The first failure cancels the
// remaining requests.
func (r *Resolver) fetchAll(ctx context.Context, videoID string) (map[string]*extract.Document, error) {
	g, gctx := errgroup.WithContext(ctx)
	docs := make([]*extract.Document, len(r.fetch))

	for i, ep := range r.fetch {
		i, ep := i, ep
		g.Go(func() error {
			doc, err := r.fetchOne(gctx, ep, videoID)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[string]*extract.Document, len(docs))
	for i, ep := range r.fetch {
		byName[ep.Name] = docs[i]
	}
	return byName, nil
}

func (r *Resolver) fetchOne(ctx context.Context, ep Endpoint, videoID string) (*extract.Document, error) {
	url := ep.URL(videoID)
	r.log.WithFields(logrus.Fields{"mirror": r.mirror, "endpoint": ep.Name}).Debugf("GET %s", url)

	var (
		doc *extract.Document
		err error
	)
	switch ep.Format {
	case FormatJSON:
		var body []byte
		body, err = httputil.GetJSON(ctx, r.client, url)
		if err == nil {
			doc, err = extract.NewJSONDocument(body)
		}
	default:
		var body string
		body, err = httputil.GetHTML(ctx, r.client, url)
		if err == nil {
			doc = extract.NewHTMLDocument(body)
		}
	}

	if err != nil {
		return nil, &FetchError{Endpoint: ep.Name, URL: url, Err: err}
	}
	return doc, nil
}

func (r *Resolver) fail(videoID string, kind Kind, err error) error {
	r.log.WithFields(logrus.Fields{
		"mirror":   r.mirror,
		"video_id": videoID,
		"kind":     kind,
	}).WithError(err).Warn("resolve failed")
	return &ResolveError{Mirror: r.mirror, Kind: kind, Err: err}
}
