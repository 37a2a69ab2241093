package webprint_test

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/webprint"
)

const (
	testFilename = "https://example.com/Simple.lbx"
	testSize     = "https://example.com/26x76.bin"
)

func testArgs(fn func(args *webprint.Args)) webprint.Args {
	args := webprint.Args{
		File: webprint.Filename(testFilename),
		Size: webprint.Size(testSize),
	}
	if fn != nil {
		fn(&args)
	}
	return args
}

func TestGenerate_Minimal(t *testing.T) {
	t.Parallel()

	u, err := webprint.Generate(testArgs(nil))
	if err != nil {
		t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
	}

	if got, want := u.Scheme(), "brotherwebprint"; got != want {
		t.Errorf("u.Scheme() = %q, want %q", got, want)
	}
	if got, want := u.URL().Scheme+":", "brotherwebprint:"; got != want {
		t.Errorf("u.URL().Scheme = %q, want %q", got, want)
	}
	if got, want := u.Host(), "print"; got != want {
		t.Errorf("u.Host() = %q, want %q", got, want)
	}
	if got, ok := u.Get("filename"); !ok || got != testFilename {
		t.Errorf("u.Get(\"filename\") = %q, %v, want %q, true", got, ok, testFilename)
	}
	if got, ok := u.Get("size"); !ok || got != testSize {
		t.Errorf("u.Get(\"size\") = %q, %v, want %q, true", got, ok, testSize)
	}

	want := "brotherwebprint://print?filename=https%3A%2F%2Fexample.com%2FSimple.lbx&size=https%3A%2F%2Fexample.com%2F26x76.bin"
	if got := u.String(); got != want {
		t.Errorf("u.String() = %q, want %q", got, want)
	}
}

func TestGenerate_Booleans(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		field string
		set   func(a *webprint.Args, v bool)
	}{
		{"rotate180", webprint.FieldRotate180, func(a *webprint.Args, v bool) { a.Rotate180 = &v }},
		{"peelMode", webprint.FieldPeelMode, func(a *webprint.Args, v bool) { a.PeelMode = &v }},
		{"formatarchiveupdate", webprint.FieldFormatArchiveUpdate, func(a *webprint.Args, v bool) { a.FormatArchiveUpdate = &v }},
		{
			"forceStretchPrintableArea",
			webprint.FieldForceStretchPrintableArea,
			func(a *webprint.Args, v bool) { a.ForceStretchPrintableArea = &v },
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			for v, want := range map[bool]string{true: "1", false: "0"} {
				u, err := webprint.Generate(testArgs(func(a *webprint.Args) { c.set(a, v) }))
				if err != nil {
					t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
				}
				if got, ok := u.Get(c.field); !ok || got != want {
					t.Errorf("u.Get(%q) = %q, %v, want %q, true", c.field, got, ok, want)
				}
			}
		})
	}
}

func TestGenerate_Numbers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		args  webprint.Args
		field string
		want  string
	}{
		{"copies", testArgs(func(a *webprint.Args) { a.Copies = webprint.Ptr(2) }), "copies", "2"},
		{"negative density", testArgs(func(a *webprint.Args) { a.RJDensity = webprint.Ptr(-5) }), "rjDensity", "-5"},
		{"zero density", testArgs(func(a *webprint.Args) { a.RJDensity = webprint.Ptr(0) }), "rjDensity", "0"},
		{"fractional scale", testArgs(func(a *webprint.Args) { a.ScaleValue = webprint.Ptr(0.75) }), "scaleValue", "0.75"},
		{"integral scale", testArgs(func(a *webprint.Args) { a.ScaleValue = webprint.Ptr(1.0) }), "scaleValue", "1"},
		{"large copies", testArgs(func(a *webprint.Args) { a.Copies = webprint.Ptr(10000) }), "copies", "10000"},
		{"zero copies", testArgs(func(a *webprint.Args) { a.Copies = webprint.Ptr(0) }), "copies", "0"},
		{"negative copies", testArgs(func(a *webprint.Args) { a.Copies = webprint.Ptr(-1) }), "copies", "-1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := webprint.Generate(c.args)
			if err != nil {
				t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
			}
			if got, ok := u.Get(c.field); !ok || got != c.want {
				t.Errorf("u.Get(%q) = %q, %v, want %q, true", c.field, got, ok, c.want)
			}
		})
	}
}

func TestGenerate_OmitsAbsent(t *testing.T) {
	t.Parallel()

	u, err := webprint.Generate(testArgs(func(a *webprint.Args) {
		a.Copies = nil
		a.Rotate180 = webprint.Ptr(false)
	}))
	if err != nil {
		t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
	}
	if u.Has("copies") {
		t.Error("u.Has(\"copies\") = true, want false")
	}
	if !u.Has("rotate180") {
		t.Error("u.Has(\"rotate180\") = false, want true")
	}
	if got, want := len(u.Query()), 3; got != want {
		t.Errorf("len(u.Query()) = %d, want %d", got, want)
	}
}

func TestGenerate_CanonicalOrder(t *testing.T) {
	t.Parallel()

	args := webprint.Args{
		Objects: []webprint.Object{
			webprint.Text("TITLE", "Hello World"),
			webprint.Barcode("CODE", "123&456"),
		},
		ForceStretchPrintableArea: webprint.Ptr(false),
		FormatArchiveUpdate:       webprint.Ptr(true),
		TextObjectName:            webprint.Ptr("TEXT"),
		ScaleValue:                webprint.Ptr(0.75),
		PrintMode:                 webprint.Ptr(webprint.PrintModeScale),
		Orientation:               webprint.Ptr(webprint.OrientationPortrait),
		PrintQuality:              webprint.Ptr(webprint.PrintQualityDoubleSpeed),
		PeelMode:                  webprint.Ptr(false),
		Rotate180:                 webprint.Ptr(true),
		RJDensity:                 webprint.Ptr(-2),
		Halftone:                  webprint.Ptr(webprint.HalftoneErrorDiffusion),
		Copies:                    webprint.Ptr(2),
		Size:                      webprint.Size(testSize),
		File:                      webprint.FileAttach("TGJ4/Yg=="),
	}

	u, err := webprint.Generate(args)
	if err != nil {
		t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
	}

	want := "brotherwebprint://print?size=https%3A%2F%2Fexample.com%2F26x76.bin" +
		"&copies=2&halftone=error_diffusion&rjDensity=-2&rotate180=1&peelMode=0" +
		"&printQuality=double_speed&orientation=portrait&printMode=scale&scaleValue=0.75" +
		"&text_object_name=TEXT&fileattach=TGJ4%2FYg%3D%3D&formatarchiveupdate=1" +
		"&forceStretchPrintableArea=0&text_TITLE=Hello+World&barcode_CODE=123%26456"
	if got := u.String(); got != want {
		t.Errorf("u.String() = %q, want %q", got, want)
	}
}

func TestGenerate_ValidCombinations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		file webprint.FileSource
		size webprint.SizeSource
	}{
		{"filename + size", webprint.Filename(testFilename), webprint.Size(testSize)},
		{"filename + sizeattach", webprint.Filename(testFilename), webprint.SizeAttach("base64EncodedBinData")},
		{"fileattach + size", webprint.FileAttach("base64EncodedLbxData"), webprint.Size(testSize)},
		{"fileattach + sizeattach", webprint.FileAttach("base64EncodedLbxData"), webprint.SizeAttach("base64EncodedBinData")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := webprint.Generate(webprint.Args{File: c.file, Size: c.size})
			if err != nil {
				t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
			}
			if got, ok := u.Get(c.file.FieldName()); !ok || got != c.file.String() {
				t.Errorf("u.Get(%q) = %q, %v, want %q, true", c.file.FieldName(), got, ok, c.file.String())
			}
			if got, ok := u.Get(c.size.FieldName()); !ok || got != c.size.String() {
				t.Errorf("u.Get(%q) = %q, %v, want %q, true", c.size.FieldName(), got, ok, c.size.String())
			}
			if !u.IsValid() {
				t.Error("u.IsValid() = false, want true")
			}
		})
	}
}

func TestGenerate_ExclusivePairs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		params  webprint.Params
		wantErr error
		wantMsg string
	}{
		{
			"neither filename nor fileattach",
			webprint.Params{{"size", testSize}},
			webprint.ErrMissingRequired,
			"either 'filename' or 'fileattach' must be provided",
		},
		{
			"both filename and fileattach",
			webprint.Params{{"filename", testFilename}, {"fileattach", "base64data"}, {"size", testSize}},
			webprint.ErrConflictingFields,
			"only one of 'filename' or 'fileattach' can be provided, not both",
		},
		{
			"neither size nor sizeattach",
			webprint.Params{{"filename", testFilename}},
			webprint.ErrMissingRequired,
			"either 'size' or 'sizeattach' must be provided",
		},
		{
			"both size and sizeattach",
			webprint.Params{{"filename", testFilename}, {"size", testSize}, {"sizeattach", "base64data"}},
			webprint.ErrConflictingFields,
			"only one of 'size' or 'sizeattach' can be provided, not both",
		},
		{
			"nil value is absent",
			webprint.Params{{"filename", nil}, {"size", testSize}},
			webprint.ErrMissingRequired,
			"either 'filename' or 'fileattach' must be provided",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := webprint.GenerateParams(c.params)
			if u != nil {
				t.Errorf("webprint.GenerateParams(params) = %v, want nil", u)
			}
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("webprint.GenerateParams(params) error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if err != nil && !strings.Contains(err.Error(), c.wantMsg) {
				t.Errorf("webprint.GenerateParams(params) error = %q, want containing %q", err, c.wantMsg)
			}
		})
	}
}

func TestGenerate_MissingTypedSources(t *testing.T) {
	t.Parallel()

	_, err := webprint.Generate(webprint.Args{Copies: webprint.Ptr(1)})

	var missErr *webprint.MissingRequiredError
	if !errors.As(err, &missErr) {
		t.Fatalf("webprint.Generate(args) error = %v, want *webprint.MissingRequiredError", err)
	}
	want := &webprint.MissingRequiredError{Pair: "file source", Fields: [2]string{"filename", "fileattach"}}
	if diff := cmp.Diff(missErr, want); diff != "" {
		t.Errorf("file pair error mismatch (-got +want):\n%v", diff)
	}

	// both pairs are checked, the size pair is reported too
	if msg := err.Error(); !strings.Contains(msg, "missing size source") {
		t.Errorf("webprint.Generate(args) error = %q, want containing %q", msg, "missing size source")
	}
}

func TestGenerate_BothPairsViolated(t *testing.T) {
	t.Parallel()

	_, err := webprint.GenerateParams(webprint.Params{
		{"filename", testFilename},
		{"fileattach", "base64data"},
	})
	if !errors.Is(err, webprint.ErrConflictingFields) {
		t.Errorf("error = %v, want matching %v", err, webprint.ErrConflictingFields)
	}
	if !errors.Is(err, webprint.ErrMissingRequired) {
		t.Errorf("error = %v, want matching %v", err, webprint.ErrMissingRequired)
	}

	msg := err.Error()
	fileIdx := strings.Index(msg, "'filename'")
	sizeIdx := strings.Index(msg, "'size'")
	if fileIdx < 0 || sizeIdx < 0 || fileIdx > sizeIdx {
		t.Errorf("error = %q, want file pair reported before size pair", msg)
	}
}

func TestGenerate_InvalidValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args webprint.Args
	}{
		{"density above range", testArgs(func(a *webprint.Args) { a.RJDensity = webprint.Ptr(6) })},
		{"density below range", testArgs(func(a *webprint.Args) { a.RJDensity = webprint.Ptr(-6) })},
		{"unknown halftone", testArgs(func(a *webprint.Args) { a.Halftone = webprint.Ptr(webprint.Halftone("blur")) })},
		{"unknown print mode", testArgs(func(a *webprint.Args) { a.PrintMode = webprint.Ptr(webprint.PrintMode("zoom")) })},
		{"NaN scale", testArgs(func(a *webprint.Args) { a.ScaleValue = webprint.Ptr(math.NaN()) })},
		{"infinite scale", testArgs(func(a *webprint.Args) { a.ScaleValue = webprint.Ptr(math.Inf(1)) })},
		{"object without name", testArgs(func(a *webprint.Args) { a.Objects = []webprint.Object{webprint.Text("", "x")} })},
		{"object of unknown kind", testArgs(func(a *webprint.Args) {
			a.Objects = []webprint.Object{{Kind: "qrcode", Name: "Q", Value: "x"}}
		})},
		{"object shadowing field", testArgs(func(a *webprint.Args) {
			a.Objects = []webprint.Object{webprint.Text("object_name", "x")}
		})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := webprint.Generate(c.args)
			if u != nil {
				t.Errorf("webprint.Generate(args) = %v, want nil", u)
			}
			if diff := cmp.Diff(err, webprint.ErrInvalidArgument, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("webprint.Generate(args) error = %v, want %v\ndiff (-got +want):\n%v", err, webprint.ErrInvalidArgument, diff)
			}
			if verr := c.args.Validate(); !errors.Is(verr, webprint.ErrInvalidArgument) {
				t.Errorf("args.Validate() = %v, want %v", verr, webprint.ErrInvalidArgument)
			}
		})
	}
}

func TestGenerateParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		params  webprint.Params
		want    string
		wantErr error
	}{
		{
			"insertion order",
			webprint.Params{{"copies", 3}, {"size", testSize}, {"rotate180", false}, {"filename", testFilename}},
			"brotherwebprint://print?copies=3&size=https%3A%2F%2Fexample.com%2F26x76.bin&rotate180=0" +
				"&filename=https%3A%2F%2Fexample.com%2FSimple.lbx",
			nil,
		},
		{
			"unknown names pass through",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"text_TEXT", "Hi there"}, {"custom", 1.5}},
			"brotherwebprint://print?fileattach=a&sizeattach=b&text_TEXT=Hi+there&custom=1.5",
			nil,
		},
		{
			"nil values are skipped",
			webprint.Params{{"fileattach", "a"}, {"copies", nil}, {"peelMode", (*bool)(nil)}, {"sizeattach", "b"}},
			"brotherwebprint://print?fileattach=a&sizeattach=b",
			nil,
		},
		{
			"typed scalars",
			webprint.Params{
				{"fileattach", "a"},
				{"sizeattach", "b"},
				{"halftone", webprint.HalftoneThreshold},
				{"copies", uint8(4)},
				{"scaleValue", float32(0.1)},
				{"peelMode", webprint.Ptr(true)},
			},
			"brotherwebprint://print?fileattach=a&sizeattach=b&halftone=threshold&copies=4&scaleValue=0.1&peelMode=1",
			nil,
		},
		{
			"integral float for integer field",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"copies", 2.0}},
			"brotherwebprint://print?fileattach=a&sizeattach=b&copies=2",
			nil,
		},
		{
			"fractional float for integer field",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"copies", 2.5}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"string for integer field",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"copies", "2"}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"number for boolean field",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"rotate180", 1}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"number for source field",
			webprint.Params{{"filename", 42}, {"sizeattach", "b"}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"infinite unknown number",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"custom", math.Inf(-1)}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"empty name",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"", "x"}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"repeated source name",
			webprint.Params{{"filename", "a"}, {"filename", "b"}, {"size", "s"}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"repeated name with absent first value",
			webprint.Params{{"filename", nil}, {"filename", "x"}, {"size", "s"}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"repeated unknown name",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"custom", 1}, {"custom", 2}},
			"",
			webprint.ErrInvalidArgument,
		},
		{
			"structured value",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"copies", map[string]any{"n": 1}}},
			"",
			webprint.ErrUnsupportedValueType,
		},
		{
			"slice value",
			webprint.Params{{"fileattach", "a"}, {"sizeattach", "b"}, {"text_A", []string{"x"}}},
			"",
			webprint.ErrUnsupportedValueType,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := webprint.GenerateParams(c.params)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("webprint.GenerateParams(params) error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got := u.String(); got != c.want {
				t.Errorf("webprint.GenerateParams(params) = %q, want %q", got, c.want)
			}
		})
	}
}

func TestGenerate_PointerSources(t *testing.T) {
	t.Parallel()

	u, err := webprint.Generate(webprint.Args{
		File: webprint.Ptr(webprint.Filename("f")),
		Size: webprint.Ptr(webprint.SizeAttach("s")),
	})
	if err != nil {
		t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
	}
	if got, want := u.String(), "brotherwebprint://print?filename=f&sizeattach=s"; got != want {
		t.Errorf("webprint.Generate(args) = %q, want %q", got, want)
	}

	_, err = webprint.Generate(webprint.Args{
		File: (*webprint.FileAttach)(nil),
		Size: webprint.Size("s"),
	})
	if !errors.Is(err, webprint.ErrMissingRequired) {
		t.Errorf("webprint.Generate(args with nil pointer source) error = %v, want %v", err, webprint.ErrMissingRequired)
	}
}

func TestGenerate_RepeatedObject(t *testing.T) {
	t.Parallel()

	args := testArgs(func(a *webprint.Args) {
		a.Objects = []webprint.Object{webprint.Text("TITLE", "a"), webprint.Text("TITLE", "b")}
	})
	u, err := webprint.Generate(args)
	if u != nil {
		t.Errorf("webprint.Generate(args) = %v, want nil", u)
	}
	if diff := cmp.Diff(err, webprint.ErrInvalidArgument, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("webprint.Generate(args) error = %v, want %v\ndiff (-got +want):\n%v", err, webprint.ErrInvalidArgument, diff)
	}
}

func TestGenerateParams_UnsupportedValueType(t *testing.T) {
	t.Parallel()

	_, err := webprint.GenerateParams(webprint.Params{
		{"filename", testFilename},
		{"size", testSize},
		{"copies", struct{ N int }{2}},
	})

	var typeErr *webprint.UnsupportedValueTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("webprint.GenerateParams(params) error = %v, want *webprint.UnsupportedValueTypeError", err)
	}
	want := &webprint.UnsupportedValueTypeError{Field: "copies", Type: "struct { N int }"}
	if diff := cmp.Diff(typeErr, want); diff != "" {
		t.Errorf("error mismatch (-got +want):\n%v", diff)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	t.Parallel()

	args := testArgs(func(a *webprint.Args) { a.Copies = webprint.Ptr(2) })
	want, err := webprint.Generate(args)
	if err != nil {
		t.Fatalf("webprint.Generate(args) error = %v, want nil", err)
	}

	var wg sync.WaitGroup
	results := make([]*webprint.URI, 16)
	for i := range results {
		wg.Go(func() {
			results[i], _ = webprint.Generate(args)
		})
	}
	wg.Wait()

	for i, u := range results {
		if !u.Equal(want) {
			t.Errorf("results[%d] = %v, want %v", i, u, want)
		}
	}
}
