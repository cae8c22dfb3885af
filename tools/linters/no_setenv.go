// Command no_setenv reports environment mutation inside test files.
//
// Tests build their configuration with testutil.LoadTestConfig().PlatformConfig
// and edit the returned struct; the process environment stays read-only so
// packages can run their tests in parallel.
package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/singlechecker"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `no_setenv: forbid os.Setenv, os.Unsetenv and t.Setenv in _test.go files

Build a *config.Config with testutil.LoadTestConfig().PlatformConfig(dbType),
change the fields the test needs and pass it to constructors.`

// Analyzer is the no_setenv check
var Analyzer = &analysis.Analyzer{
	Name:     "no_setenv",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var forbiddenOS = map[string]bool{
	"Setenv":   true,
	"Unsetenv": true,
	"Clearenv": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if !strings.HasSuffix(pass.Fset.Position(call.Pos()).Filename, "_test.go") {
			return
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		name := sel.Sel.Name

		if pkg, ok := sel.X.(*ast.Ident); ok {
			if pkgName, ok := pass.TypesInfo.Uses[pkg].(*types.PkgName); ok {
				if pkgName.Imported().Path() == "os" && forbiddenOS[name] {
					pass.Reportf(call.Pos(), "os.%s is forbidden in tests: edit a copy of the test config instead", name)
				}
				return
			}
		}

		if name == "Setenv" && isTestingType(pass.TypesInfo.TypeOf(sel.X)) {
			pass.Reportf(call.Pos(), "t.Setenv is forbidden in tests: edit a copy of the test config instead")
		}
	})

	return nil, nil
}

// isTestingType matches *testing.T, *testing.B and *testing.F
func isTestingType(t types.Type) bool {
	ptr, ok := t.(*types.Pointer)
	if !ok {
		return false
	}
	named, ok := ptr.Elem().(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	if named.Obj().Pkg().Path() != "testing" {
		return false
	}
	switch named.Obj().Name() {
	case "T", "B", "F":
		return true
	}
	return false
}

func main() {
	singlechecker.Main(Analyzer)
}
