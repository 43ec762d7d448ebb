// Package gen renders Go source registering the query bindings declared
// in a livequery.yaml manifest.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"github.com/go-drift/livequery/cmd/livequery/internal/config"
)

const fileTemplate = `// Code generated by livequery gen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/go-drift/livequery/pkg/live"
	"github.com/go-drift/livequery/pkg/query"
)

// Predicates supplies the match functions for predicate queries declared
// in livequery.yaml. Populate it in an init func before calling Register.
var Predicates = map[string]func(query.Node) bool{}

// Bindings holds one live query binding per manifest entry.
type Bindings struct {
{{- range .Queries}}
	{{.Field}} *query.Binding[query.Node]
{{- end}}
}

// Register creates every declared binding and registers it with r.
func Register(r *query.Registry) *Bindings {
	b := &Bindings{}
{{- range .Queries}}
	b.{{.Field}} = query.NewBinding({{printf "%q" .Name}}, live.NewCollection[query.Node](), {{.Finder}}, query.NodeExtractor)
	r.Register(b.{{.Field}})
{{- end}}
	return b
}

// predicateFor resolves a predicate hook, matching nothing when the hook
// has not been populated.
func predicateFor(name string) func(query.Node) bool {
	if fn, ok := Predicates[name]; ok {
		return fn
	}
	return func(query.Node) bool { return false }
}
`

var tmpl = template.Must(template.New("livequery_gen").Parse(fileTemplate))

type queryData struct {
	Name   string
	Field  string
	Finder string
}

type fileData struct {
	Package string
	Queries []queryData
}

// Render produces the generated registration source for the resolved
// manifest. It fails when no queries are declared.
func Render(resolved *config.Resolved) ([]byte, error) {
	if len(resolved.Queries) == 0 {
		return nil, fmt.Errorf("livequery.yaml declares no queries")
	}

	data := fileData{Package: resolved.Package}
	for _, q := range resolved.Queries {
		data.Queries = append(data.Queries, queryData{
			Name:   q.Name,
			Field:  exportedName(q.Name),
			Finder: finderExpr(q),
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not format: %w", err)
	}
	return src, nil
}

func finderExpr(q config.Query) string {
	switch q.Kind {
	case config.KindType:
		return fmt.Sprintf("query.ByTypeName(%q)", q.Target)
	case config.KindKey:
		return fmt.Sprintf("query.ByKey(%q)", q.Target)
	case config.KindPredicate:
		return fmt.Sprintf("query.ByPredicate(predicateFor(%q))", q.Target)
	default:
		// Validate rejects unknown kinds before Render runs.
		return "query.ByPredicate(func(query.Node) bool { return false })"
	}
}

// exportedName capitalizes a manifest name into a struct field name.
func exportedName(name string) string {
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	out := string(runes)
	if strings.HasPrefix(out, "_") {
		out = "X" + out
	}
	return out
}
