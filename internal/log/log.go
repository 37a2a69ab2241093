// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/webprint"
	"github.com/ghettovoice/webprint/internal/constraints"
	"github.com/ghettovoice/webprint/internal/util"
)

// MaxValueLen is the maximum length of a logged parameter value.
// Base64 attachments are usually much longer and get cut.
const MaxValueLen = 64

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u *webprint.URI) slog.Value {
		if u == nil {
			return slog.StringValue("<nil>")
		}
		return slog.GroupValue(
			slog.Bool("valid", u.IsValid()),
			slog.Attr{Key: "query", Value: paramsValue(u.Query().All())},
		)
	}),
	slogformatter.FormatByType(func(ps webprint.Params) slog.Value {
		return paramsValue(ps.All())
	}),
)

// paramsValue renders parameters as a group with values cut to [MaxValueLen].
func paramsValue[V any](params iter.Seq2[string, V]) slog.Value {
	var attrs []slog.Attr
	for name, v := range params {
		attrs = append(attrs, slog.String(name, util.Ellipsis(fmt.Sprint(v), MaxValueLen)))
	}
	return slog.GroupValue(attrs...)
}

// Format is a log output format.
type Format string

const (
	FormatConsole Format = "console"
	FormatDev     Format = "dev"
)

// New creates a logger writing to w in the given format.
// Unknown formats fall back to [FormatConsole].
func New(w io.Writer, format Format, level slog.Leveler) *slog.Logger {
	switch format {
	case FormatDev:
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	default:
		return slog.New(newHandler(
			console.NewHandler(w, &console.HandlerOptions{
				Level:      level,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(util.Ellipsis(string(v.v), MaxValueLen))
}

// StringValue returns a value logger that formats v as string cut to [MaxValueLen].
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
