package codegen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"
)

const typedescPath = "github.com/gering/Tiny-JSON/typedesc"

var fileTmpl = template.Must(template.New("file").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by tinyjson-gen. DO NOT EDIT.

package {{.Package}}

import "` + typedescPath + `"

func init() {
{{- range .Structs}}
	typedesc.MustRegister(typedesc.StructFor[{{.Name}}]().
{{- if .SnakeCase}}
		SnakeCase().
{{- end}}
{{- range .Fields}}
{{- if .Omit}}
		Omit({{quote .Name}}).
{{- else if .WireName}}
		Rename({{quote .Name}}, {{quote .WireName}}).
{{- else}}
		Member({{quote .Name}}).
{{- end}}
{{- end}}
		Build())
{{- end}}
}
`))

// GenerateCode renders the registrations for structs as a Go file of
// package pkgName. The result is gofmt formatted.
func GenerateCode(pkgName string, structs []*StructInfo) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, struct {
		Package string
		Structs []*StructInfo
	}{pkgName, structs})
	if err != nil {
		return nil, err
	}
	res, err := imports.Process(pkgName+GeneratedSuffix, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w\n%s", err, buf.Bytes())
	}
	return res, nil
}

// OutputFile returns where the code for pkg goes under cfg.
func OutputFile(cfg *Config, pkg *PackageInfo) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return filepath.Join(pkg.Dir, pkg.Name+GeneratedSuffix)
}
