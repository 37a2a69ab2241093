package webprint

//go:generate go tool errtrace -w .

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// Kind is the value kind of a field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min, Max float64
}

func (b *Bounds) contains(v float64) bool { return b == nil || (v >= b.Min && v <= b.Max) }

func (b *Bounds) String() string {
	if b == nil {
		return "[-inf, +inf]"
	}
	return "[" + formatFloat(b.Min, 64) + ", " + formatFloat(b.Max, 64) + "]"
}

// Field describes a parameter of the print URI.
type Field struct {
	Name   string
	Kind   Kind
	Values []string // allowed values of an enumerated string field
	Bounds *Bounds  // allowed range of a numeric field

	get func(*Args) any
	set func(*Args, any)
}

// ParseValue parses the URI representation s of the field value.
// Booleans are accepted as "1"/"0" and "true"/"false".
// The returned value is a string, int, float64 or bool depending on [Field.Kind].
func (f Field) ParseValue(s string) (any, error) {
	var (
		v   any
		err error
	)
	switch f.Kind {
	case KindString:
		v = s
	case KindInt:
		v, err = strconv.Atoi(s)
	case KindNumber:
		v, err = strconv.ParseFloat(s, 64)
	case KindBool:
		switch strings.ToLower(s) {
		case "1", "true":
			v = true
		case "0", "false":
			v = false
		default:
			err = strconv.ErrSyntax
		}
	}
	if err != nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("field '%s' expects %s, got %q", f.Name, f.Kind, s))
	}
	if err := f.check(mustValueOf(v)); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return v, nil
}

// check verifies that v belongs to the field domain.
func (f Field) check(v value) error {
	switch f.Kind {
	case KindString:
		if v.kind != KindString {
			return errtrace.Wrap(f.kindMismatchErr(v))
		}
		if len(f.Values) > 0 && !slices.Contains(f.Values, v.text) {
			return errtrace.Wrap(NewInvalidArgumentError(
				"field '%s' must be one of %s, got %q", f.Name, strings.Join(f.Values, ", "), v.text))
		}
	case KindInt:
		if v.kind != KindInt && (v.kind != KindNumber || v.num != math.Trunc(v.num)) {
			return errtrace.Wrap(f.kindMismatchErr(v))
		}
		fallthrough
	case KindNumber:
		if v.kind != KindInt && v.kind != KindNumber {
			return errtrace.Wrap(f.kindMismatchErr(v))
		}
		if !v.finite() {
			return errtrace.Wrap(NewInvalidArgumentError("field '%s' must be a finite number, got %s", f.Name, v.text))
		}
		if !f.Bounds.contains(v.num) {
			return errtrace.Wrap(NewInvalidArgumentError("field '%s' must be in range %s, got %s", f.Name, f.Bounds, v.text))
		}
	case KindBool:
		if v.kind != KindBool {
			return errtrace.Wrap(f.kindMismatchErr(v))
		}
	}
	return nil
}

func (f Field) kindMismatchErr(v value) error {
	return NewInvalidArgumentError("field '%s' expects %s, got %s %q", f.Name, f.Kind, v.kind, v.text) //errtrace:skip
}

// fields lists all known fields in the canonical order.
var fields = []Field{
	fileField[Filename](FieldFilename),
	sizeField[Size](FieldSize),
	intField(FieldCopies, func(a *Args) **int { return &a.Copies }, nil),
	stringField(FieldHalftone, func(a *Args) **Halftone { return &a.Halftone },
		HalftoneThreshold, HalftonePatternDither, HalftoneErrorDiffusion),
	intField(FieldRJDensity, func(a *Args) **int { return &a.RJDensity }, &Bounds{-5, 5}),
	boolField(FieldRotate180, func(a *Args) **bool { return &a.Rotate180 }),
	boolField(FieldPeelMode, func(a *Args) **bool { return &a.PeelMode }),
	stringField(FieldPrintQuality, func(a *Args) **PrintQuality { return &a.PrintQuality },
		PrintQualityNormal, PrintQualityDoubleSpeed),
	stringField(FieldOrientation, func(a *Args) **Orientation { return &a.Orientation },
		OrientationPortrait, OrientationLandscape),
	stringField(FieldPrintMode, func(a *Args) **PrintMode { return &a.PrintMode },
		PrintModeOriginal, PrintModeFitToPage, PrintModeScale, PrintModeFitToPaper),
	numberField(FieldScaleValue, func(a *Args) **float64 { return &a.ScaleValue }),
	stringField(FieldTextObjectName, func(a *Args) **string { return &a.TextObjectName }),
	stringField(FieldBarcodeObjectName, func(a *Args) **string { return &a.BarcodeObjectName }),
	stringField(FieldImageObjectName, func(a *Args) **string { return &a.ImageObjectName }),
	fileField[FileAttach](FieldFileAttach),
	sizeField[SizeAttach](FieldSizeAttach),
	boolField(FieldFormatArchiveUpdate, func(a *Args) **bool { return &a.FormatArchiveUpdate }),
	boolField(FieldForceStretchPrintableArea, func(a *Args) **bool { return &a.ForceStretchPrintableArea }),
}

var fieldIndex = func() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return idx
}()

// Fields returns descriptors of all known fields in the canonical order.
func Fields() []Field { return slices.Clone(fields) }

// FieldNames returns names of all known fields in the canonical order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// LookupField returns the descriptor of the known field with the given name.
// Field names are case-sensitive.
func LookupField(name string) (Field, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func fileField[T interface {
	FileSource
	~string
}](name string) Field {
	return Field{
		Name: name,
		Kind: KindString,
		get: func(a *Args) any {
			switch v := any(a.File).(type) {
			case T:
				return string(v)
			case *T:
				if v != nil {
					return string(*v)
				}
			}
			return nil
		},
		set: func(a *Args, v any) { a.File = T(v.(string)) }, //nolint:forcetypeassert
	}
}

func sizeField[T interface {
	SizeSource
	~string
}](name string) Field {
	return Field{
		Name: name,
		Kind: KindString,
		get: func(a *Args) any {
			switch v := any(a.Size).(type) {
			case T:
				return string(v)
			case *T:
				if v != nil {
					return string(*v)
				}
			}
			return nil
		},
		set: func(a *Args, v any) { a.Size = T(v.(string)) }, //nolint:forcetypeassert
	}
}

func stringField[T ~string](name string, ref func(*Args) **T, values ...T) Field {
	f := Field{
		Name: name,
		Kind: KindString,
		get:  func(a *Args) any { return deref(*ref(a)) },
		set:  func(a *Args, v any) { *ref(a) = Ptr(T(v.(string))) }, //nolint:forcetypeassert
	}
	for _, v := range values {
		f.Values = append(f.Values, string(v))
	}
	return f
}

func intField(name string, ref func(*Args) **int, bounds *Bounds) Field {
	return Field{
		Name:   name,
		Kind:   KindInt,
		Bounds: bounds,
		get:    func(a *Args) any { return deref(*ref(a)) },
		set:    func(a *Args, v any) { *ref(a) = Ptr(v.(int)) }, //nolint:forcetypeassert
	}
}

func numberField(name string, ref func(*Args) **float64) Field {
	return Field{
		Name: name,
		Kind: KindNumber,
		get:  func(a *Args) any { return deref(*ref(a)) },
		set:  func(a *Args, v any) { *ref(a) = Ptr(v.(float64)) }, //nolint:forcetypeassert
	}
}

func boolField(name string, ref func(*Args) **bool) Field {
	return Field{
		Name: name,
		Kind: KindBool,
		get:  func(a *Args) any { return deref(*ref(a)) },
		set:  func(a *Args, v any) { *ref(a) = Ptr(v.(bool)) }, //nolint:forcetypeassert
	}
}
