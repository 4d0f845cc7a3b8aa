package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/autoharness/cartool-core/internal/registry"
)

const registryTmpl = `// Code generated by propgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/autoharness/cartool-core/internal/registry"
	"github.com/autoharness/cartool-core/internal/vhal"
)

// allowedProperties lists the properties the tool may expose, in
// declaration order.
var allowedProperties = []registry.Property{
{{- range .Entries}}
	{ID: {{idExpr .}}, Name: {{quote .Name}}, Description: {{quote .Description}}},
{{- end}}
}
`

var funcMap = template.FuncMap{
	"quote":  func(s string) string { return fmt.Sprintf("%q", s) },
	"idExpr": idExpr,
}

var registryTemplate = template.Must(template.New("registry").Funcs(funcMap).Parse(registryTmpl))

type registryData struct {
	Source  string
	Package string
	Entries []registry.Entry
}

// idExpr renders a property id. Platform ids are referenced through their
// vhal constant; vendor ids are written as literals.
func idExpr(e registry.Entry) string {
	if e.Symbol != "" {
		return "vhal." + e.Symbol
	}
	return fmt.Sprintf("%d", int32(e.ID))
}

// Generate renders the registry source for entries.
func Generate(source, pkg string, entries []registry.Entry) (string, error) {
	var b strings.Builder
	data := registryData{Source: source, Package: pkg, Entries: entries}
	if err := registryTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering registry: %w", err)
	}
	return b.String(), nil
}

func loadEntries(configPath string) ([]registry.Entry, error) {
	return registry.ParseFile(configPath, registry.DefaultResolver)
}

func generateFile(configPath, outputPath, pkg string) (int, error) {
	entries, err := loadEntries(configPath)
	if err != nil {
		return 0, err
	}

	code, err := Generate(filepath.Base(configPath), pkg, entries)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := writeFormatted(outputPath, code); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Keep the raw output around for debugging the template.
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
