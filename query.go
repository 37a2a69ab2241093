package webprint

import (
	"io"
	"iter"
	"net/url"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/webprint/internal/errorutil"
	"github.com/ghettovoice/webprint/internal/ioutil"
	"github.com/ghettovoice/webprint/internal/util"
)

// QueryParam is a serialized URI query parameter.
type QueryParam struct {
	Name  string
	Value string
}

// Query is an ordered list of URI query parameters.
// Unlike [url.Values] it keeps the parameters order and names case.
type Query []QueryParam

// Get returns the first value of the parameter with the given name.
func (q Query) Get(name string) (string, bool) {
	for _, p := range q {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns all values of the parameter with the given name.
func (q Query) Values(name string) []string {
	var vals []string
	for _, p := range q {
		if p.Name == name {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Has reports whether the parameter with the given name is present.
func (q Query) Has(name string) bool {
	_, ok := q.Get(name)
	return ok
}

// All returns an iterator over all parameters in order.
func (q Query) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, p := range q {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	}
}

func queryParamName(p QueryParam) string { return p.Name }

// Clone returns a copy of q.
func (q Query) Clone() Query { return slices.Clone(q) }

// RenderTo writes the percent-encoded query to w.
// Names and values are escaped with [url.QueryEscape]: "~" is kept and "*" is
// percent-encoded, the opposite of the WHATWG URLSearchParams serializer.
func (q Query) RenderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, p := range q {
		if i > 0 {
			cw.WriteString("&")
		}
		cw.WriteString(url.QueryEscape(p.Name))
		cw.WriteString("=")
		cw.WriteString(url.QueryEscape(p.Value))
	}
	return errtrace.Wrap2(cw.Result())
}

// Encode returns the percent-encoded query, e.g. "copies=2&rotate180=1".
func (q Query) Encode() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	q.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// ParseQuery parses the percent-encoded query keeping the parameters order.
// Empty segments are skipped, a segment without "=" yields an empty value.
func ParseQuery(raw string) (Query, error) {
	var q Query
	for seg := range strings.SplitSeq(raw, "&") {
		if seg == "" {
			continue
		}
		name, val, _ := strings.Cut(seg, "=")
		name, err := url.QueryUnescape(name)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, err))
		}
		val, err = url.QueryUnescape(val)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, err))
		}
		q = append(q, QueryParam{name, val})
	}
	return q, nil
}
