package webprint

import (
	"fmt"
	"strings"
)

// Parameter names recognized by the Smooth Print URL scheme.
const (
	FieldFilename                  = "filename"
	FieldFileAttach                = "fileattach"
	FieldSize                      = "size"
	FieldSizeAttach                = "sizeattach"
	FieldCopies                    = "copies"
	FieldHalftone                  = "halftone"
	FieldRJDensity                 = "rjDensity"
	FieldRotate180                 = "rotate180"
	FieldPeelMode                  = "peelMode"
	FieldPrintQuality              = "printQuality"
	FieldOrientation               = "orientation"
	FieldPrintMode                 = "printMode"
	FieldScaleValue                = "scaleValue"
	FieldTextObjectName            = "text_object_name"
	FieldBarcodeObjectName         = "barcode_object_name"
	FieldImageObjectName           = "image_object_name"
	FieldFormatArchiveUpdate       = "formatarchiveupdate"
	FieldForceStretchPrintableArea = "forceStretchPrintableArea"
)

// Args describes what and how to print.
//
// File and Size are exclusive pairs encoded as sum types: a [FileSource] is either
// a [Filename] or a [FileAttach], a [SizeSource] is either a [Size] or a [SizeAttach].
// Both must be set. All other fields are optional, nil means absent.
type Args struct {
	File FileSource // layout template (.lbx)
	Size SizeSource // media settings (.bin)

	Copies       *int
	Halftone     *Halftone
	RJDensity    *int // brightness between -5 (light) and 5 (dark)
	Rotate180    *bool
	PeelMode     *bool
	PrintQuality *PrintQuality
	Orientation  *Orientation
	PrintMode    *PrintMode
	// ScaleValue is the print ratio. It takes effect only with PrintMode set to [PrintModeScale].
	ScaleValue        *float64
	TextObjectName    *string
	BarcodeObjectName *string
	ImageObjectName   *string

	FormatArchiveUpdate       *bool
	ForceStretchPrintableArea *bool

	// Objects are the layout object contents, rendered after all other fields
	// in the order they were added.
	Objects []Object
}

// Params returns args as ordered parameters, in the canonical field order followed by Objects.
// Absent fields are skipped.
func (args Args) Params() Params {
	ps := make(Params, 0, len(fields)+len(args.Objects))
	for _, f := range fields {
		if v := f.get(&args); v != nil {
			ps = append(ps, Param{f.Name, v})
		}
	}
	for _, o := range args.Objects {
		ps = append(ps, Param{o.ParamName(), o.Value})
	}
	return ps
}

// Validate reports whether args would produce a print URI.
func (args Args) Validate() error {
	_, err := Generate(args)
	return err //errtrace:skip
}

// FileSource is the source of the layout template, either [Filename] or [FileAttach].
// Pointers to either type are accepted as well, a nil pointer is absent.
type FileSource interface {
	fmt.Stringer
	// FieldName returns the name of the URI parameter carrying the source.
	FieldName() string
	fileSource()
}

// Filename is a layout template (.lbx) URL.
type Filename string

func (Filename) FieldName() string { return FieldFilename }

func (f Filename) String() string { return string(f) }

func (Filename) fileSource() {}

// FileAttach is a base64 encoded layout template.
type FileAttach string

func (FileAttach) FieldName() string { return FieldFileAttach }

func (f FileAttach) String() string { return string(f) }

func (FileAttach) fileSource() {}

// SizeSource is the source of the media settings, either [Size] or [SizeAttach].
// Pointers to either type are accepted as well, a nil pointer is absent.
type SizeSource interface {
	fmt.Stringer
	// FieldName returns the name of the URI parameter carrying the source.
	FieldName() string
	sizeSource()
}

// Size is a media settings file (.bin) URL.
type Size string

func (Size) FieldName() string { return FieldSize }

func (s Size) String() string { return string(s) }

func (Size) sizeSource() {}

// SizeAttach is a base64 encoded media settings file.
type SizeAttach string

func (SizeAttach) FieldName() string { return FieldSizeAttach }

func (s SizeAttach) String() string { return string(s) }

func (SizeAttach) sizeSource() {}

type Halftone string

const (
	HalftoneThreshold      Halftone = "threshold"
	HalftonePatternDither  Halftone = "pattern_dither"
	HalftoneErrorDiffusion Halftone = "error_diffusion"
)

type PrintQuality string

const (
	PrintQualityNormal      PrintQuality = "normal"       // higher quality, slower
	PrintQualityDoubleSpeed PrintQuality = "double_speed" // lower quality, faster
)

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

type PrintMode string

const (
	PrintModeOriginal   PrintMode = "original"
	PrintModeFitToPage  PrintMode = "fit_to_page"
	PrintModeScale      PrintMode = "scale"
	PrintModeFitToPaper PrintMode = "fit_to_paper"
)

// ObjectKind is the kind of a layout object.
type ObjectKind string

const (
	ObjectText    ObjectKind = "text"
	ObjectBarcode ObjectKind = "barcode"
	ObjectImage   ObjectKind = "image"
)

// Object sets the content of a named object of the P-touch Editor layout.
// It is rendered as "<kind>_<name>=<value>", e.g. "text_TITLE=Hello".
type Object struct {
	Kind  ObjectKind
	Name  string
	Value string // text, barcode data or image URL
}

// Text creates a text object content.
func Text(name, value string) Object { return Object{ObjectText, name, value} }

// Barcode creates a barcode object content.
func Barcode(name, value string) Object { return Object{ObjectBarcode, name, value} }

// Image creates an image object content, url points to a jpg, jpeg, bmp or png image.
func Image(name, url string) Object { return Object{ObjectImage, name, url} }

// ParamName returns the URI parameter name of the object.
func (o Object) ParamName() string { return string(o.Kind) + "_" + o.Name }

// Validate checks that the object has a known kind and a name that does not shadow a known field.
func (o Object) Validate() error {
	switch o.Kind {
	case ObjectText, ObjectBarcode, ObjectImage:
	default:
		return NewInvalidArgumentError("unknown object kind '%s'", o.Kind) //errtrace:skip
	}
	if o.Name == "" {
		return NewInvalidArgumentError("%s object has empty name", o.Kind) //errtrace:skip
	}
	if _, ok := LookupField(o.ParamName()); ok {
		return NewInvalidArgumentError("%s object '%s' shadows field '%s'", o.Kind, o.Name, o.ParamName()) //errtrace:skip
	}
	return nil
}

// ParseObject parses a layout object content from a parameter name and value.
// It reports false when name has no "text_", "barcode_" or "image_" prefix
// or the object name is empty.
func ParseObject(name, value string) (Object, bool) {
	for _, k := range []ObjectKind{ObjectText, ObjectBarcode, ObjectImage} {
		if objName, ok := strings.CutPrefix(name, string(k)+"_"); ok && objName != "" {
			return Object{k, objName, value}, true
		}
	}
	return Object{}, false
}

// Ptr returns a pointer to v, handy for setting optional [Args] fields.
func Ptr[T any](v T) *T { return &v }
