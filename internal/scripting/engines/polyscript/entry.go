package polyscript

import (
	"context"
	"fmt"

	risorast "github.com/deepnoodle-ai/risor/v2/pkg/ast"
	risorparser "github.com/deepnoodle-ai/risor/v2/pkg/parser"
	"go.starlark.net/syntax"
)

// declaresEntry reports whether src defines a top-level function named entry.
// Sources are parsed with the language's own parser, so a syntax error is
// returned as an error and commented-out or nested definitions do not count.
func declaresEntry(ctx context.Context, lang Language, path string, src []byte, entry string) (bool, error) {
	switch lang {
	case LanguageStarlark:
		return starlarkDeclares(path, src, entry)
	case LanguageRisor:
		return risorDeclares(ctx, path, src, entry)
	default:
		return false, fmt.Errorf("unsupported language: %s", lang)
	}
}

func starlarkDeclares(path string, src []byte, entry string) (bool, error) {
	f, err := syntax.Parse(path, src, 0)
	if err != nil {
		return false, err
	}
	for _, stmt := range f.Stmts {
		def, ok := stmt.(*syntax.DefStmt)
		if ok && def.Name.Name == entry {
			return true, nil
		}
	}
	return false, nil
}

// risorDeclares accepts `function enter(...) {}` as well as
// `let enter = function(...) {}` and the const form.
func risorDeclares(ctx context.Context, path string, src []byte, entry string) (bool, error) {
	prog, err := risorparser.Parse(ctx, string(src), &risorparser.Config{Filename: path})
	if err != nil {
		return false, err
	}
	for _, stmt := range prog.Stmts {
		switch s := stmt.(type) {
		case *risorast.Func:
			if s.Name != nil && s.Name.Name == entry {
				return true, nil
			}
		case *risorast.Var:
			if isNamedFunc(s.Name, s.Value, entry) {
				return true, nil
			}
		case *risorast.Const:
			if isNamedFunc(s.Name, s.Value, entry) {
				return true, nil
			}
		}
	}
	return false, nil
}

func isNamedFunc(name *risorast.Ident, value risorast.Expr, entry string) bool {
	if name == nil || name.Name != entry {
		return false
	}
	_, ok := value.(*risorast.Func)
	return ok
}
