package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

// header goes on top of every generated file.
const header = "// Code generated by crudgen. DO NOT EDIT.\n\n"

// funcs are the helpers shared by all text templates. Casing never happens
// here — the Model carries every derived name already.
var funcs = template.FuncMap{
	// bt emits a backtick so templates can write struct tags.
	"bt": func() string { return "`" },
}

// renderTemplate executes one artifact template and gofmt-formats the
// result. On a formatting failure the unformatted source is returned along
// with the error so the orchestrator can write it for debugging.
func renderTemplate(name, text string, m *Model) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	var buf bytes.Buffer
	buf.WriteString(header)
	if err := tmpl.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting %s output: %w", name, err)
	}
	return formatted, nil
}

// cw is a line-oriented code writer for the renderers that emit too much
// conditional structure for a flat template (views and pages).
type cw struct{ bytes.Buffer }

func (w *cw) line(format string, args ...interface{}) {
	fmt.Fprintf(&w.Buffer, format+"\n", args...)
}

func (w *cw) raw(s string) {
	w.WriteString(s)
}

// finish formats the writer's accumulated source.
func (w *cw) finish(name string) ([]byte, error) {
	formatted, err := format.Source(w.Bytes())
	if err != nil {
		return w.Bytes(), fmt.Errorf("formatting %s output: %w", name, err)
	}
	return formatted, nil
}
