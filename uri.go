package webprint

import (
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/webprint/internal/constraints"
	"github.com/ghettovoice/webprint/internal/errorutil"
	"github.com/ghettovoice/webprint/internal/ioutil"
	"github.com/ghettovoice/webprint/internal/util"
)

// Scheme and host of every print URI.
const (
	Scheme = "brotherwebprint"
	Host   = "print"
)

// URI is a print URI, e.g.
//
//	brotherwebprint://print?filename=https%3A%2F%2Fexample.com%2FSimple.lbx&size=https%3A%2F%2Fexample.com%2F26x76.bin
//
// URI is immutable; use [Generate] or [ParseURI] to obtain one.
type URI struct {
	query Query
}

// Scheme returns the URI scheme, always "brotherwebprint".
func (*URI) Scheme() string { return Scheme }

// Host returns the URI host, always "print".
func (*URI) Host() string { return Host }

// Query returns a copy of the URI query parameters.
func (u *URI) Query() Query {
	if u == nil {
		return nil
	}
	return u.query.Clone()
}

// Get returns the value of the query parameter with the given name.
func (u *URI) Get(name string) (string, bool) {
	if u == nil {
		return "", false
	}
	return u.query.Get(name)
}

// Has reports whether the query parameter with the given name is present.
func (u *URI) Has(name string) bool {
	return u != nil && u.query.Has(name)
}

// URL returns the URI as [url.URL].
func (u *URI) URL() *url.URL {
	if u == nil {
		return nil
	}
	return &url.URL{
		Scheme:     Scheme,
		Host:       Host,
		RawQuery:   u.query.Encode(),
		ForceQuery: true,
	}
}

// Args converts the URI back to print arguments.
// Parameters named "text_*", "barcode_*" and "image_*" that are not known fields
// become [Args.Objects]; any other unknown parameter is an error.
func (u *URI) Args() (Args, error) {
	if u == nil {
		return Args{}, errtrace.Wrap(NewInvalidArgumentError("nil URI"))
	}
	if err := u.validate(); err != nil {
		return Args{}, errtrace.Wrap(err)
	}

	var args Args
	for _, p := range u.query {
		if f, ok := LookupField(p.Name); ok {
			v, err := f.ParseValue(p.Value)
			if err != nil {
				return Args{}, errtrace.Wrap(err)
			}
			f.set(&args, v)
			continue
		}
		if o, ok := ParseObject(p.Name, p.Value); ok {
			args.Objects = append(args.Objects, o)
			continue
		}
		return Args{}, errtrace.Wrap(NewInvalidArgumentError("unknown parameter '%s'", p.Name))
	}
	return args, nil
}

// Params returns the URI parameters as untyped print arguments.
// Values of known fields are parsed to their kind, other values are kept as strings.
// Unlike [URI.Args], the exclusive pairs are not checked.
func (u *URI) Params() (Params, error) {
	if u == nil {
		return nil, nil
	}
	ps := make(Params, 0, len(u.query))
	for _, p := range u.query {
		var v any = p.Value
		if f, ok := LookupField(p.Name); ok {
			pv, err := f.ParseValue(p.Value)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			v = pv
		}
		ps.Set(p.Name, v)
	}
	return ps, nil
}

// Clone returns a deep copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	return &URI{query: u.query.Clone()}
}

// RenderTo writes the URI to w.
func (u *URI) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(Scheme + "://" + Host + "?")
	cw.Call(u.query.RenderTo)
	return errtrace.Wrap2(cw.Result())
}

// String returns the string representation of the URI.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// Format implements [fmt.Formatter] for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// Equal reports whether the URI has the same parameters in the same order as val.
// val can be URI or *URI.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return slices.Equal(u.query, other.query)
}

// IsValid reports whether the URI carries exactly one file source and exactly one size source,
// and no parameter is repeated.
func (u *URI) IsValid() bool {
	return u != nil && u.validate() == nil
}

func (u *URI) validate() error {
	if err := checkUnique(u.query, queryParamName); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(validatePairs(u.query.Has))
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := ParseURI(string(text))
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// ParseURI parses a print URI.
// Scheme and host are matched case-insensitively, the query keeps its order.
// ParseURI does not validate the parameters, see [URI.IsValid] and [URI.Args].
func ParseURI[T constraints.Byteseq](src T) (*URI, error) {
	if len(src) == 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, "empty input"))
	}

	pu, err := url.Parse(string(src))
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, err))
	}
	if !strings.EqualFold(pu.Scheme, Scheme) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, "unexpected scheme %q", pu.Scheme))
	}
	if !strings.EqualFold(pu.Host, Host) || pu.User != nil || (pu.Path != "" && pu.Path != "/") {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, "unexpected authority or path in %q", string(src)))
	}

	q, err := ParseQuery(pu.RawQuery)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &URI{query: q}, nil
}
