package codegen

import (
	"fmt"
	"sync"

	"golang.org/x/tools/go/packages"
)

// PackageLoader loads and caches type-checked packages by directory.
type PackageLoader struct {
	mu    sync.Mutex
	cache map[string]*packages.Package
}

func NewPackageLoader() *PackageLoader {
	return &PackageLoader{cache: map[string]*packages.Package{}}
}

// LoadDir loads the package in dir. Generated files are part of the load,
// so a previous generation never hides a type.
func (l *PackageLoader) LoadDir(dir string) (*packages.Package, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pkg, ok := l.cache[dir]; ok {
		return pkg, nil
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedSyntax,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package in %q", dir)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package %q: %v", pkg.PkgPath, pkg.Errors[0])
	}
	l.cache[dir] = pkg
	return pkg, nil
}
