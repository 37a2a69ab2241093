package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"braces.dev/errtrace"

	"github.com/ghettovoice/webprint"
	"github.com/ghettovoice/webprint/internal/schema"
)

// FieldsCmd lists known print URI parameters.
type FieldsCmd struct {
	Schema bool `name:"schema" help:"Print the JSON Schema of print arguments documents instead"`
}

func (c *FieldsCmd) run(e *env) error {
	if c.Schema {
		data, err := schema.JSON()
		if err != nil {
			return errtrace.Wrap(err)
		}
		_, err = fmt.Fprintln(e.out, string(data))
		return errtrace.Wrap(err)
	}

	tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tDOMAIN")
	for _, f := range webprint.Fields() {
		var domain string
		switch {
		case len(f.Values) > 0:
			domain = strings.Join(f.Values, ", ")
		case f.Bounds != nil:
			domain = f.Bounds.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Kind, domain)
	}
	return errtrace.Wrap(tw.Flush())
}
