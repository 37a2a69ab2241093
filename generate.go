package webprint

import (
	"fmt"

	"braces.dev/errtrace"

	"github.com/ghettovoice/webprint/internal/errorutil"
)

type exclusivePair struct {
	name   string
	fields [2]string
}

var (
	fileSourcePair = exclusivePair{"file source", [2]string{FieldFilename, FieldFileAttach}}
	sizeSourcePair = exclusivePair{"size source", [2]string{FieldSize, FieldSizeAttach}}
)

func (p exclusivePair) check(has func(name string) bool) error {
	first, second := has(p.fields[0]), has(p.fields[1])
	switch {
	case !first && !second:
		return &MissingRequiredError{Pair: p.name, Fields: p.fields} //errtrace:skip
	case first && second:
		return &ConflictingFieldsError{Fields: p.fields} //errtrace:skip
	default:
		return nil
	}
}

// validatePairs checks the file source pair, then the size source pair.
// Both checks always run, failures are joined in that order.
func validatePairs(has func(name string) bool) error {
	return errorutil.JoinPrefix("invalid print arguments", //errtrace:skip
		fileSourcePair.check(has),
		sizeSourcePair.check(has),
	)
}

// checkUnique fails with [ErrInvalidArgument] on a parameter name that occurs more than once.
func checkUnique[P any](ps []P, name func(P) string) error {
	seen := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		n := name(p)
		if _, ok := seen[n]; ok {
			return errtrace.Wrap(NewInvalidArgumentError("parameter '%s' is repeated", n))
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Generate validates args and builds the print URI.
//
// Parameters are emitted in the canonical field order (see [FieldNames]),
// followed by [Args.Objects]. Absent fields are omitted.
//
// The returned error matches [ErrMissingRequired] or [ErrConflictingFields]
// when an exclusive pair is violated, and [ErrInvalidArgument] when a value
// is outside of its field domain.
func Generate(args Args) (*URI, error) {
	ps := args.Params()
	if err := checkUnique(ps, paramName); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := validatePairs(ps.Has); err != nil {
		return nil, errtrace.Wrap(err)
	}
	for _, o := range args.Objects {
		if err := o.Validate(); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return errtrace.Wrap2(build(ps))
}

// GenerateParams validates untyped arguments and builds the print URI.
//
// Parameters are emitted in the order of ps. Known fields are checked against their
// descriptors, other names are passed through as is. A value that is not a string,
// number, boolean or nil fails with [ErrUnsupportedValueType]. A repeated name fails
// with [ErrInvalidArgument] before the exclusive pairs are checked.
func GenerateParams(ps Params) (*URI, error) {
	if err := checkUnique(ps, paramName); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := validatePairs(ps.Has); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(build(ps))
}

func build(ps Params) (*URI, error) {
	q := make(Query, 0, len(ps))
	for _, p := range ps {
		if p.Name == "" {
			return nil, errtrace.Wrap(NewInvalidArgumentError("empty parameter name"))
		}
		v, ok := valueOf(p.Value)
		if !ok {
			return nil, errtrace.Wrap(&UnsupportedValueTypeError{Field: p.Name, Type: fmt.Sprintf("%T", p.Value)})
		}
		if v.absent() {
			continue
		}
		if f, ok := LookupField(p.Name); ok {
			if err := f.check(v); err != nil {
				return nil, errtrace.Wrap(err)
			}
		} else if (v.kind == KindInt || v.kind == KindNumber) && !v.finite() {
			return nil, errtrace.Wrap(NewInvalidArgumentError("parameter '%s' must be a finite number, got %s", p.Name, v.text))
		}
		q = append(q, QueryParam{p.Name, v.text})
	}
	return &URI{query: q}, nil
}
