// Package extract pulls named fields out of fetched upstream documents
// using a declarative table of rules. Upstream markup drift is handled by
// editing the table, not the matching code.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

// Document is one fetched upstream body. HTML documents are matched as raw
// text and parsed into a DOM only when a selector rule needs it.
type Document struct {
	Raw  string
	JSON map[string]any

	once   sync.Once
	dom    *goquery.Document
	domErr error
}

// NewHTMLDocument wraps a raw HTML body.
func NewHTMLDocument(raw string) *Document {
	return &Document{Raw: raw}
}

// NewJSONDocument decodes a JSON object body.
func NewJSONDocument(raw []byte) (*Document, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("parsing JSON object: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("JSON body is not an object")
	}
	return &Document{Raw: string(raw), JSON: obj}, nil
}

// DOM returns the parsed HTML tree, building it on first use.
func (d *Document) DOM() (*goquery.Document, error) {
	d.once.Do(func() {
		d.dom, d.domErr = goquery.NewDocumentFromReader(strings.NewReader(d.Raw))
	})
	return d.dom, d.domErr
}

// Rule describes one way to obtain a field value from a named document.
// Exactly one of Pattern, Selector or JSONKey drives the lookup; Pattern may
// also refine the attribute picked by Selector.
type Rule struct {
	Source     string
	Pattern    *regexp.Regexp
	Selector   string
	Attr       string
	JSONKey    string
	Transforms []Transform
}

// Field is an output field and its rules, tried in order. The first rule
// producing a non-blank value wins.
type Field struct {
	Name  string
	Rules []Rule
}

// Plan is the full field-resolution table for one upstream.
type Plan []Field

// Names returns the field names in table order.
func (p Plan) Names() []string {
	return lo.Map(p, func(f Field, _ int) string { return f.Name })
}

// Values maps field names to extracted values.
type Values map[string]string

// MissingFieldsError reports required fields that no rule could fill.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Extract resolves every field in plan against docs. All fields are
// required: the returned Values are complete when err is nil.
func Extract(docs map[string]*Document, plan Plan) (Values, error) {
	values := make(Values, len(plan))
	for _, field := range plan {
		for _, rule := range field.Rules {
			v, err := rule.apply(docs)
			if err != nil {
				return nil, fmt.Errorf("extracting %s: %w", field.Name, err)
			}
			if strings.TrimSpace(v) != "" {
				values[field.Name] = v
				break
			}
		}
	}

	missing := lo.Filter(plan.Names(), func(name string, _ int) bool {
		_, ok := values[name]
		return !ok
	})
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	return values, nil
}

func (r Rule) apply(docs map[string]*Document) (string, error) {
	doc, ok := docs[r.Source]
	if !ok || doc == nil {
		return "", nil
	}

	var v string
	switch {
	case r.JSONKey != "":
		v = jsonString(doc.JSON, r.JSONKey)
	case r.Selector != "":
		dom, err := doc.DOM()
		if err != nil {
			return "", fmt.Errorf("parsing HTML: %w", err)
		}
		sel := dom.Find(r.Selector).First()
		if r.Attr != "" {
			v = sel.AttrOr(r.Attr, "")
		} else {
			v = sel.Text()
		}
		if r.Pattern != nil {
			v = firstSubmatch(r.Pattern, v)
		}
	case r.Pattern != nil:
		v = firstSubmatch(r.Pattern, doc.Raw)
	}

	if v == "" {
		return "", nil
	}
	for _, t := range r.Transforms {
		v = t(v)
	}
	return v, nil
}

// firstSubmatch returns the first non-empty capture group of the first match.
func firstSubmatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	for _, g := range lo.Drop(m, 1) {
		if g != "" {
			return g
		}
	}
	return ""
}

// jsonString reads a top-level string field. Null, absent and non-string
// values count as absent.
func jsonString(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
