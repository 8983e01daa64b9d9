package generator

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	scenarioContext = "ScenarioContext"
	suiteContext    = "TestSuiteContext"
)

// SourceScanner finds godog initializers in Go source files.
type SourceScanner struct {
}

func NewSourceScanner() *SourceScanner {
	return &SourceScanner{}
}

// FindInitializers walks parentDirectory and collects every function taking
// a single *godog.ScenarioContext or *godog.TestSuiteContext. Test files and
// unexported functions are only collected from parentDirectory itself, where
// the harness is generated.
func (s *SourceScanner) FindInitializers(ctx context.Context, parentDirectory string) (*Output, error) {
	directories, err := getAllSubDirectories(parentDirectory)
	if err != nil {
		return nil, err
	}
	directories = append([]string{parentDirectory}, directories...)

	output := &Output{
		ScenarioInitializers: make([]*FunctionLocator, 0),
		SuiteInitializers:    make([]*FunctionLocator, 0),
	}

	for _, dir := range directories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		local := dir == parentDirectory
		packages, err := parser.ParseDir(token.NewFileSet(), dir, func(info fs.FileInfo) bool {
			return info.Name() != GeneratedFile
		}, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("cannot parse directory %s: %w", dir, err)
		}
		if len(packages) == 0 {
			continue
		}

		importPath, err := detectImportPath(dir)
		if err != nil {
			return nil, err
		}

		for name, pkg := range packages {
			if strings.HasSuffix(name, "_test") || (!local && name == "main") {
				continue
			}
			for filePath, file := range pkg.Files {
				if !local && strings.HasSuffix(filePath, "_test.go") {
					continue
				}
				collectInitializers(file, importPath, local, output)
			}
		}
	}

	sortLocators(output.ScenarioInitializers)
	sortLocators(output.SuiteInitializers)
	return output, nil
}

func collectInitializers(file *ast.File, importPath string, local bool, output *Output) {
	alias := godogImportName(file.Imports)
	if alias == "" {
		return
	}

	for _, decl := range file.Decls {
		fnDecl, ok := decl.(*ast.FuncDecl)
		if !ok || fnDecl.Recv != nil {
			continue
		}
		if !local && !fnDecl.Name.IsExported() {
			continue
		}

		locator := &FunctionLocator{
			FullPackageName: importPath,
			FunctionName:    fnDecl.Name.Name,
		}
		switch contextParam(fnDecl, alias) {
		case scenarioContext:
			output.ScenarioInitializers = append(output.ScenarioInitializers, locator)
		case suiteContext:
			output.SuiteInitializers = append(output.SuiteInitializers, locator)
		}
	}
}

// godogImportName returns the name godog is imported under, or "" when the
// file does not import it.
func godogImportName(imports []*ast.ImportSpec) string {
	for _, spec := range imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || path != godogPath {
			continue
		}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				return ""
			}
			return spec.Name.Name
		}
		return "godog"
	}
	return ""
}

// contextParam returns the godog context type name when fnDecl takes exactly
// one pointer to it and returns nothing.
func contextParam(fnDecl *ast.FuncDecl, alias string) string {
	fnType := fnDecl.Type
	if fnType.TypeParams != nil || (fnType.Results != nil && len(fnType.Results.List) > 0) {
		return ""
	}
	params := fnType.Params.List
	if len(params) != 1 || len(params[0].Names) > 1 {
		return ""
	}

	star, ok := params[0].Type.(*ast.StarExpr)
	if !ok {
		return ""
	}
	selector, ok := star.X.(*ast.SelectorExpr)
	if !ok {
		return ""
	}
	pkg, ok := selector.X.(*ast.Ident)
	if !ok || pkg.Name != alias {
		return ""
	}

	switch selector.Sel.Name {
	case scenarioContext, suiteContext:
		return selector.Sel.Name
	}
	return ""
}

func sortLocators(locators []*FunctionLocator) {
	slices.SortFunc(locators, func(a, b *FunctionLocator) int {
		if c := strings.Compare(a.FullPackageName, b.FullPackageName); c != 0 {
			return c
		}
		return strings.Compare(a.FunctionName, b.FunctionName)
	})
}

// getAllSubDirectories lists the directories below dirPath, leaving out
// hidden, vendor and testdata directories.
func getAllSubDirectories(dirPath string) ([]string, error) {
	var subdirectories []string

	err := filepath.WalkDir(dirPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() || path == dirPath {
			return nil
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "vendor" || name == "testdata" {
			return filepath.SkipDir
		}
		subdirectories = append(subdirectories, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk directory %s: %w", dirPath, err)
	}

	return subdirectories, nil
}
