package app

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/webprint"
)

// InspectCmd decodes a print URI.
type InspectCmd struct {
	URI    string `arg:"" name:"uri" help:"Print URI to decode (- for stdin)"`
	Output string `short:"o" name:"output" default:"text" enum:"text,yaml" help:"Output format (${enum}); yaml is accepted by generate --file"`
	Strict bool   `name:"strict" help:"Fail unless the URI converts back to typed print arguments"`
}

func (c *InspectCmd) run(e *env) error {
	raw := c.URI
	if raw == "-" {
		data, err := io.ReadAll(e.in)
		if err != nil {
			return errtrace.Wrap(err)
		}
		raw = strings.TrimSpace(string(data))
	}

	u, err := webprint.ParseURI(raw)
	if err != nil {
		return errtrace.Wrap(err)
	}
	e.logger.Debug("print URI parsed", "uri", u)

	if c.Strict {
		if _, err := u.Args(); err != nil {
			return errtrace.Wrap(err)
		}
	} else if !u.IsValid() {
		e.logger.Warn("print URI violates exclusive pairs", "uri", u)
	}

	switch c.Output {
	case "yaml":
		ps, err := u.Params()
		if err != nil {
			return errtrace.Wrap(err)
		}
		enc := yaml.NewEncoder(e.out)
		enc.SetIndent(2)
		if err := enc.Encode(ps); err != nil {
			return errtrace.Wrap(err)
		}
		return errtrace.Wrap(enc.Close())
	default:
		tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
		for name, val := range u.Query().All() {
			fmt.Fprintf(tw, "%s\t%s\n", name, val)
		}
		return errtrace.Wrap(tw.Flush())
	}
}
