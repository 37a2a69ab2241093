package app

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/webprint"
	"github.com/ghettovoice/webprint/internal/log"
	"github.com/ghettovoice/webprint/internal/schema"
	"github.com/ghettovoice/webprint/internal/util"
)

// GenerateCmd builds a print URI from a document and flags.
// Flags override document values; a flag set to an empty string removes the parameter.
type GenerateCmd struct {
	File       string `short:"f" name:"file" placeholder:"PATH" help:"YAML or JSON print arguments document (- for stdin)"`
	SkipSchema bool   `name:"skip-schema" help:"Do not validate the document against the arguments schema"`

	AttachFile string `name:"attach-file" type:"existingfile" placeholder:"PATH" help:"Embed a local layout template (.lbx) as fileattach"`
	AttachSize string `name:"attach-size" type:"existingfile" placeholder:"PATH" help:"Embed a local media settings file (.bin) as sizeattach"`

	Filename                  *string `name:"filename" help:"Layout template (.lbx) URL"`
	FileAttach                *string `name:"fileattach" help:"Base64 encoded layout template"`
	Size                      *string `name:"size" help:"Media settings (.bin) URL"`
	SizeAttach                *string `name:"sizeattach" help:"Base64 encoded media settings"`
	Copies                    *string `name:"copies" help:"Number of copies"`
	Halftone                  *string `name:"halftone" help:"Halftone: threshold, pattern_dither or error_diffusion"`
	RJDensity                 *string `name:"rj-density" help:"Print density from -5 to 5"`
	Rotate180                 *string `name:"rotate180" help:"Rotate by 180 degrees (1/0)"`
	PeelMode                  *string `name:"peel-mode" help:"Peel mode (1/0)"`
	PrintQuality              *string `name:"print-quality" help:"Print quality: normal or double_speed"`
	Orientation               *string `name:"orientation" help:"Orientation: portrait or landscape"`
	PrintMode                 *string `name:"print-mode" help:"Print mode: original, fit_to_page, scale or fit_to_paper"`
	ScaleValue                *string `name:"scale-value" help:"Print ratio for the scale print mode"`
	TextObjectName            *string `name:"text-object-name" help:"Name of the text object to fill"`
	BarcodeObjectName         *string `name:"barcode-object-name" help:"Name of the barcode object to fill"`
	ImageObjectName           *string `name:"image-object-name" help:"Name of the image object to fill"`
	FormatArchiveUpdate       *string `name:"format-archive-update" help:"Update the format archive (1/0)"`
	ForceStretchPrintableArea *string `name:"force-stretch-printable-area" help:"Stretch to the printable area (1/0)"`

	Objects []string `short:"o" name:"object" sep:"none" placeholder:"KIND_NAME=VALUE" help:"Layout object content, e.g. text_TITLE=Hello (repeatable)"`
}

type fieldFlag struct {
	name string
	val  *string
}

func (c *GenerateCmd) fieldFlags() []fieldFlag {
	return []fieldFlag{
		{webprint.FieldFilename, c.Filename},
		{webprint.FieldSize, c.Size},
		{webprint.FieldCopies, c.Copies},
		{webprint.FieldHalftone, c.Halftone},
		{webprint.FieldRJDensity, c.RJDensity},
		{webprint.FieldRotate180, c.Rotate180},
		{webprint.FieldPeelMode, c.PeelMode},
		{webprint.FieldPrintQuality, c.PrintQuality},
		{webprint.FieldOrientation, c.Orientation},
		{webprint.FieldPrintMode, c.PrintMode},
		{webprint.FieldScaleValue, c.ScaleValue},
		{webprint.FieldTextObjectName, c.TextObjectName},
		{webprint.FieldBarcodeObjectName, c.BarcodeObjectName},
		{webprint.FieldImageObjectName, c.ImageObjectName},
		{webprint.FieldFileAttach, c.FileAttach},
		{webprint.FieldSizeAttach, c.SizeAttach},
		{webprint.FieldFormatArchiveUpdate, c.FormatArchiveUpdate},
		{webprint.FieldForceStretchPrintableArea, c.ForceStretchPrintableArea},
	}
}

func (c *GenerateCmd) run(e *env) error {
	ps, err := c.params(e)
	if err != nil {
		return errtrace.Wrap(err)
	}
	e.logger.Debug("print arguments collected", "params", ps)

	u, err := webprint.GenerateParams(ps)
	if err != nil {
		return errtrace.Wrap(err)
	}
	e.logger.Debug("print URI generated", "uri", u)

	_, err = fmt.Fprintln(e.out, u.String())
	return errtrace.Wrap(err)
}

// params merges the document, the attachments and the flags in that order.
func (c *GenerateCmd) params(e *env) (webprint.Params, error) {
	var ps webprint.Params
	if c.File != "" {
		doc, err := c.readDocument(e.in)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if !c.SkipSchema {
			if err := schema.Validate(doc); err != nil {
				return nil, errtrace.Wrap(fmt.Errorf("document %s: %w", c.File, err))
			}
		}
		ps, err = webprint.DecodeParams(bytes.NewReader(doc))
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("document %s: %w", c.File, err))
		}
		e.logger.Debug("print arguments document loaded", "file", c.File, "count", len(ps))
	}

	for _, a := range []struct{ path, field string }{
		{c.AttachFile, webprint.FieldFileAttach},
		{c.AttachSize, webprint.FieldSizeAttach},
	} {
		if a.path == "" {
			continue
		}
		data, err := os.ReadFile(a.path)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		enc := base64.StdEncoding.EncodeToString(data)
		e.logger.Debug("attachment embedded", "field", a.field, "path", a.path, "value", log.StringValue(enc))
		ps.Set(a.field, enc)
	}

	for _, fl := range c.fieldFlags() {
		if fl.val == nil {
			continue
		}
		s := util.TrimSP(*fl.val)
		if s == "" {
			ps.Del(fl.name)
			continue
		}
		f, _ := webprint.LookupField(fl.name)
		v, err := f.ParseValue(s)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		ps.Set(fl.name, v)
	}

	for _, o := range c.Objects {
		name, val, ok := strings.Cut(o, "=")
		if !ok {
			return nil, errtrace.Wrap(webprint.NewInvalidArgumentError("object %q must be in form KIND_NAME=VALUE", o))
		}
		obj, ok := webprint.ParseObject(name, val)
		if !ok {
			return nil, errtrace.Wrap(webprint.NewInvalidArgumentError(
				"object %q must start with text_, barcode_ or image_ followed by the object name", name))
		}
		if err := obj.Validate(); err != nil {
			return nil, errtrace.Wrap(err)
		}
		ps.Set(obj.ParamName(), obj.Value)
	}
	return ps, nil
}

func (c *GenerateCmd) readDocument(stdin io.Reader) ([]byte, error) {
	if c.File == "-" {
		return errtrace.Wrap2(io.ReadAll(stdin))
	}
	return errtrace.Wrap2(os.ReadFile(c.File))
}
