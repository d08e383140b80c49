package polyscript

import "fmt"

// Language selects the go-polyscript engine used to compile scripts.
type Language int

const (
	LanguageStarlark Language = iota + 1
	LanguageRisor
)

const (
	ExtensionStarlark = ".star"
	ExtensionRisor    = ".risor"
)

// String returns the language name.
func (l Language) String() string {
	switch l {
	case LanguageStarlark:
		return "starlark"
	case LanguageRisor:
		return "risor"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

// trailer is appended to a script that declares its entry point, so the
// compiled program evaluates to the entry result.
func (l Language) trailer(entry string) string {
	switch l {
	case LanguageStarlark:
		// the underscore variable is returned to Go
		return fmt.Sprintf("\n_ = %s(ctx)\n", entry)
	case LanguageRisor:
		return fmt.Sprintf("\n%s(ctx)\n", entry)
	default:
		return ""
	}
}

// initTrailer ends the module body with a value every engine accepts as a
// result. Risor rejects a program whose last expression is a function.
func (l Language) initTrailer() string {
	if l == LanguageRisor {
		return "\nnil\n"
	}
	return ""
}
