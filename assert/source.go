package assert

import (
	"go/ast"
	"go/parser"
	"go/token"
	"golang.org/x/tools/go/ast/inspector"
	"os"
	"sync"
)

type sourceFile struct {
	src  []byte
	fset *token.FileSet
	insp *inspector.Inspector
	err  error
}

var (
	sourceMux   sync.Mutex
	sourceCache = map[string]*sourceFile{}
)

func loadSource(path string) (*sourceFile, error) {
	sourceMux.Lock()
	defer sourceMux.Unlock()
	if sf, ok := sourceCache[path]; ok {
		return sf, sf.err
	}
	sf := &sourceFile{fset: token.NewFileSet()}
	sf.src, sf.err = os.ReadFile(path)
	if sf.err == nil {
		var file *ast.File
		file, sf.err = parser.ParseFile(sf.fset, path, sf.src, parser.SkipObjectResolution)
		if sf.err == nil {
			sf.insp = inspector.New([]*ast.File{file})
		}
	}
	// Failures are cached too, so a missing source file is only looked up once.
	sourceCache[path] = sf
	return sf, sf.err
}

// ExprText finds the call to funcName that spans line in the Go source file at path, and returns the literal source text of its argument at argIndex.
//
// False is returned if the file can't be read or parsed, or no matching call is found.
// That's expected when a binary is run away from the source tree it was built from, so callers should fall back to something else like [Render].
// False is also returned when more than one call to funcName spans line, since there's no telling which one is asking.
func ExprText(path string, line int, funcName string, argIndex int) (string, bool) {
	sf, err := loadSource(path)
	if err != nil {
		return "", false
	}
	var (
		text    string
		matches int
	)
	sf.insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if calleeName(call.Fun) != funcName {
			return
		}
		first, last := sf.fset.Position(call.Pos()).Line, sf.fset.Position(call.End()).Line
		if line < first || line > last {
			return
		}
		matches++
		if argIndex < 0 || argIndex >= len(call.Args) {
			return
		}
		arg := call.Args[argIndex]
		start, end := sf.fset.Position(arg.Pos()).Offset, sf.fset.Position(arg.End()).Offset
		text = string(sf.src[start:end])
	})
	if matches != 1 || len(text) == 0 {
		return "", false
	}
	return text, true
}

func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr: // Explicit instantiation, like Eq[int]
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	case *ast.ParenExpr:
		return calleeName(f.X)
	default:
		return ""
	}
}
