package codegen

import (
	"fmt"
	"go/build"
	"io/fs"
	"path/filepath"
	"strings"
)

// GeneratedSuffix ends the name of every file written by the generator.
const GeneratedSuffix = "_tinyjson.go"

// DiscoverPackages lists the Go package directories under dir. Hidden,
// vendor and testdata directories are skipped, as are generated files.
func DiscoverPackages(dir string, recursive bool) ([]*PackageInfo, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}
	var res []*PackageInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			base := d.Name()
			if !recursive || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") ||
				base == "vendor" || base == "testdata" {
				return filepath.SkipDir
			}
		}
		bp, err := build.ImportDir(path, 0)
		if err != nil {
			// no buildable Go files
			return nil
		}
		info := &PackageInfo{Path: bp.ImportPath, Dir: path, Name: bp.Name}
		for _, f := range bp.GoFiles {
			if strings.HasSuffix(f, GeneratedSuffix) {
				continue
			}
			info.Files = append(info.Files, filepath.Join(path, f))
		}
		if len(info.Files) > 0 {
			res = append(res, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}
	return res, nil
}
