package codegen

import (
	"embed"
	"sort"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/schema-dl/schemadl/syntax"
)

//go:embed templates/*.tmpl
var templates embed.FS

var headerTemplate = template.Must(template.ParseFS(templates, "templates/header.tmpl"))

// generator carries the mutable state threaded through one Generate call:
// the option set, the set of headers a definition has forced in, and
// whether any Ref node was seen (deciding EntityID emission).
type generator struct {
	opts       Options
	includes   map[string]bool
	sawRefType bool
}

func (g *generator) needInclude(h string) {
	if h != "" {
		g.includes[h] = true
	}
}

// Generate lowers a semantically valid schema into a single self-contained
// header text (§4.4). Callers are expected to have already run the
// Semantic Analyzer stage and confirmed it reported no diagnostics;
// Generate does not re-validate.
func Generate(schema syntax.Schema, opts Options) (string, error) {
	opts = opts.normalized()
	hoisted := HoistAnonymousTypes(schema)

	g := &generator{opts: opts, includes: map[string]bool{}}
	g.sawRefType = schemaUsesRef(hoisted)

	var decls []string
	for _, def := range hoisted.Definitions {
		text, err := g.renderDefinition(def)
		if err != nil {
			return "", errors.Wrapf(err, "generating type '%s'", def.Name)
		}
		decls = append(decls, text)
	}

	var entityIDDecl string
	if g.sawRefType {
		entityIDDecl = g.entityIDDecl()
	}

	data := struct {
		GuardMacro    string
		Includes      []string
		Namespace     string
		NeedsEntityID bool
		EntityIDDecl  string
		Decls         []string
	}{
		GuardMacro:    headerGuardMacro(opts.OutputBasename),
		Includes:      g.sortedIncludes(),
		Namespace:     opts.NamespaceName,
		NeedsEntityID: g.sawRefType,
		EntityIDDecl:  entityIDDecl,
		Decls:         decls,
	}

	var out strings.Builder
	if err := headerTemplate.Execute(&out, data); err != nil {
		return "", errors.Wrap(err, "executing header template")
	}
	return out.String(), nil
}

func (g *generator) sortedIncludes() []string {
	out := make([]string, 0, len(g.includes))
	for h := range g.includes {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

func (g *generator) entityIDDecl() string {
	if strings.HasSuffix(g.opts.EntityIDTypedef, "_t") {
		g.needInclude("<cstdint>")
	}
	if g.opts.UseStrongEntityID {
		return "struct EntityID {\n" +
			indent(1, g.opts) + "explicit EntityID(" + g.opts.EntityIDTypedef + " value) : value(value) {}\n" +
			indent(1, g.opts) + g.opts.EntityIDTypedef + " value;\n" +
			"};"
	}
	return "using EntityID = " + g.opts.EntityIDTypedef + ";"
}

func headerGuardMacro(basename string) string {
	var b strings.Builder
	for _, r := range basename {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 32)
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	b.WriteString("_H")
	return b.String()
}

func schemaUsesRef(schema syntax.Schema) bool {
	for _, def := range schema.Definitions {
		if typeUsesRef(def.Body) {
			return true
		}
	}
	return false
}

func typeUsesRef(t syntax.TypeExpr) bool {
	switch v := t.(type) {
	case syntax.RefType:
		return true
	case syntax.StructType:
		for _, f := range v.Fields {
			if typeUsesRef(f.Type) {
				return true
			}
		}
	case syntax.VariantType:
		for _, a := range v.Alternatives {
			if a.Type != nil && typeUsesRef(a.Type) {
				return true
			}
		}
	case syntax.ContainerType:
		switch v.Kind {
		case syntax.ContainerArray, syntax.ContainerOptional:
			return typeUsesRef(v.Element)
		case syntax.ContainerMap:
			return typeUsesRef(v.Key) || typeUsesRef(v.Value)
		}
	}
	return false
}

// renderDefinition dispatches a top-level (post-hoisting) TypeDefinition
// to the renderer matching its body's kind.
func (g *generator) renderDefinition(def syntax.TypeDefinition) (string, error) {
	name := PascalCase(def.Name)
	switch v := def.Body.(type) {
	case syntax.StructType:
		return g.renderStruct(name, v), nil
	case syntax.VariantType:
		return g.renderVariant(name, v), nil
	case syntax.EnumType:
		return g.renderEnum(name, v), nil
	default:
		// A top-level alias: `Name: array<u32>`, `Name: ref<entity>`, etc.
		return "using " + name + " = " + g.typeName(def.Body) + ";", nil
	}
}

func (g *generator) renderStruct(name string, s syntax.StructType) string {
	var b strings.Builder
	b.WriteString("struct " + name + " {\n")
	for _, f := range s.Fields {
		b.WriteString(indent(1, g.opts) + g.typeName(f.Type) + " " + escapeKeyword(f.Name) + ";\n")
	}
	b.WriteString("};")
	return b.String()
}

func (g *generator) renderEnum(name string, e syntax.EnumType) string {
	var b strings.Builder
	b.WriteString("enum class " + name + " {\n")
	for i, v := range e.Values {
		sep := ","
		if i == len(e.Values)-1 {
			sep = ""
		}
		b.WriteString(indent(1, g.opts) + escapeKeyword(v.Name) + sep + "\n")
	}
	b.WriteString("};")
	return b.String()
}

// renderVariant emits a tag struct per alternative plus a std::variant
// alias, since the target language's std::variant carries no names of its
// own (§4.4.3 "Variant" mapping).
func (g *generator) renderVariant(name string, v syntax.VariantType) string {
	g.needInclude("<variant>")
	var b strings.Builder
	var tagNames []string
	for _, a := range v.Alternatives {
		tag := name + PascalCase(a.Name)
		tagNames = append(tagNames, tag)
		if p, ok := a.Type.(syntax.PrimitiveType); a.Type == nil || (ok && p.Kind == syntax.PrimUnit) {
			b.WriteString("struct " + tag + " {};\n")
			continue
		}
		b.WriteString("struct " + tag + " {\n")
		b.WriteString(indent(1, g.opts) + g.typeName(a.Type) + " value;\n")
		b.WriteString("};\n")
	}
	b.WriteString("using " + name + " = std::variant<" + strings.Join(tagNames, ", ") + ">;")
	return b.String()
}

func indent(level int, opts Options) string {
	return strings.Repeat(" ", level*opts.IndentationSize)
}
