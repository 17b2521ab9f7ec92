package codegen

import (
	"fmt"
	"go/types"
	"reflect"
	"slices"

	"github.com/gering/Tiny-JSON/typedesc"
)

// ExtractStructs returns the member tables of the struct types declared in
// pkg. With names empty, every struct with at least one `tiny` tag on its
// own fields is selected; otherwise exactly the named types are.
func ExtractStructs(pkg *types.Package, names ...string) ([]*StructInfo, error) {
	scope := pkg.Scope()
	var res []*StructInfo
	for _, name := range scope.Names() {
		if len(names) > 0 && !slices.Contains(names, name) {
			continue
		}
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			if len(names) > 0 {
				return nil, fmt.Errorf("%s is not a struct", name)
			}
			continue
		}
		if len(names) == 0 && !hasTags(st) {
			continue
		}
		info, err := structInfo(name, st)
		if err != nil {
			return nil, err
		}
		res = append(res, info)
	}
	for _, name := range names {
		if !slices.ContainsFunc(res, func(s *StructInfo) bool { return s.Name == name }) {
			return nil, fmt.Errorf("type %q not found in package %q", name, pkg.Path())
		}
	}
	return res, nil
}

func hasTags(st *types.Struct) bool {
	for i := 0; i < st.NumFields(); i++ {
		if _, ok := reflect.StructTag(st.Tag(i)).Lookup(typedesc.TagKey); ok {
			return true
		}
	}
	return false
}

func structInfo(name string, st *types.Struct) (*StructInfo, error) {
	info := &StructInfo{Name: name}
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i).Name() != "_" {
			continue
		}
		tag, err := fieldTag(st, i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if _, ok := tag["snakecase"]; ok {
			info.SnakeCase = true
		}
	}
	var cands []*FieldInfo
	var walk func(st *types.Struct, depth int, visiting map[*types.Struct]bool) error
	walk = func(st *types.Struct, depth int, visiting map[*types.Struct]bool) error {
		if visiting[st] {
			return nil
		}
		visiting[st] = true
		defer delete(visiting, st)

		var embedded []*types.Struct
		for i := 0; i < st.NumFields(); i++ {
			v := st.Field(i)
			if v.Name() == "_" {
				continue
			}
			tag, err := fieldTag(st, i)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", name, v.Name(), err)
			}
			override, hasOverride := tag["field"]
			if hasOverride && override == "" {
				return fmt.Errorf("%s.%s: field= requires a name", name, v.Name())
			}
			if v.Embedded() && !hasOverride {
				if es := embeddedStruct(v); es != nil {
					embedded = append(embedded, es)
					continue
				}
			}
			if !v.Exported() {
				continue
			}
			_, omit := tag["omit"]
			if _, dash := tag["-"]; dash {
				omit = true
			}
			cands = append(cands, &FieldInfo{
				Name:     v.Name(),
				WireName: override,
				Omit:     omit,
				Depth:    depth,
			})
		}
		for _, es := range embedded {
			if err := walk(es, depth+1, visiting); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(st, 0, map[*types.Struct]bool{}); err != nil {
		return nil, err
	}

	shallowest := map[string]int{}
	for _, c := range cands {
		if d, ok := shallowest[c.Name]; !ok || c.Depth < d {
			shallowest[c.Name] = c.Depth
		}
	}
	seen := map[string]bool{}
	for _, c := range cands {
		if c.Depth != shallowest[c.Name] || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		info.Fields = append(info.Fields, c)
	}
	return info, nil
}

func fieldTag(st *types.Struct, i int) (map[string]string, error) {
	tag := reflect.StructTag(st.Tag(i)).Get(typedesc.TagKey)
	return typedesc.ParseStructTag(tag)
}

// embeddedStruct mirrors the promotion rules of typedesc: struct values
// and pointers to exported struct types promote their fields, time.Time
// does not.
func embeddedStruct(v *types.Var) *types.Struct {
	t := v.Type()
	if p, ok := t.(*types.Pointer); ok {
		if !v.Exported() {
			return nil
		}
		t = p.Elem()
	}
	if n, ok := t.(*types.Named); ok {
		if obj := n.Obj(); obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time" {
			return nil
		}
	}
	st, _ := t.Underlying().(*types.Struct)
	return st
}
