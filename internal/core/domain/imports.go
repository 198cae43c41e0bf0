package domain

import (
	"regexp"
	"strings"
)

// ImportReference is a single import statement found in a source file.
// Start and End are byte offsets of the literal text, excluding quotes.
type ImportReference struct {
	SourceFile string
	RawPath    string
	Start      int
	End        int
}

// IsRelative reports whether the import is a relative path that bypasses package resolution.
func (r ImportReference) IsRelative() bool {
	return IsRelativeImport(r.RawPath)
}

// IsRelativeImport reports whether a literal starts with ./ or ../.
func IsRelativeImport(literal string) bool {
	return strings.HasPrefix(literal, "./") || strings.HasPrefix(literal, "../")
}

// importPattern matches an import statement up to its terminating semicolon.
var importPattern = regexp.MustCompile(`\bimport\b[^;]*;`)

var (
	fromPattern   = regexp.MustCompile(`\bfrom\s*("([^"\\]*)"|'([^'\\]*)')`)
	directPattern = regexp.MustCompile(`^import\s*("([^"\\]*)"|'([^'\\]*)')`)
)

// ParseImports returns the import statements of a Solidity-style source in file order.
// Comments and string literals outside import statements are ignored.
func ParseImports(sourceFile, content string) []ImportReference {
	masked := maskNonCode(content)

	var refs []ImportReference
	for _, loc := range importPattern.FindAllStringIndex(masked, -1) {
		if loc[0] > 0 && isIdentByte(masked[loc[0]-1]) {
			continue
		}
		// The masked text keeps quotes but blanks their contents, so offsets are
		// taken from the mask and the literal from the original content.
		stmt := content[loc[0]:loc[1]]
		start, end, ok := locateLiteral(masked[loc[0]:loc[1]])
		if !ok {
			continue
		}
		refs = append(refs, ImportReference{
			SourceFile: sourceFile,
			RawPath:    stmt[start:end],
			Start:      loc[0] + start,
			End:        loc[0] + end,
		})
	}
	return refs
}

func locateLiteral(maskedStmt string) (int, int, bool) {
	if m := fromPattern.FindStringSubmatchIndex(maskedStmt); m != nil {
		return literalBounds(m)
	}
	if m := directPattern.FindStringSubmatchIndex(maskedStmt); m != nil {
		return literalBounds(m)
	}
	return 0, 0, false
}

// literalBounds picks whichever of the double or single quoted groups matched.
func literalBounds(m []int) (int, int, bool) {
	if m[4] >= 0 {
		return m[4], m[5], true
	}
	if m[6] >= 0 {
		return m[6], m[7], true
	}
	return 0, 0, false
}

// maskNonCode replaces comments with spaces and string contents with a filler
// byte that cannot close a statement, preserving every offset.
func maskNonCode(src string) string {
	out := []byte(src)
	for i := 0; i < len(out); {
		switch {
		case out[i] == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case out[i] == '/' && i+1 < len(out) && out[i+1] == '*':
			for i < len(out) && (out[i] != '*' || i+1 >= len(out) || out[i+1] != '/') {
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			for j := 0; j < 2 && i < len(out); j++ {
				out[i] = ' '
				i++
			}
		case out[i] == '"' || out[i] == '\'':
			quote := out[i]
			i++
			for i < len(out) && out[i] != quote && out[i] != '\n' {
				if out[i] == '\\' && i+1 < len(out) {
					out[i] = '_'
					i++
				}
				out[i] = '_'
				i++
			}
			i++
		default:
			i++
		}
	}
	return string(out)
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// RewriteImports replaces the literals of refs in content with the values in
// replacements (keyed by RawPath). refs must come from ParseImports on content.
func RewriteImports(content string, refs []ImportReference, replacements map[string]string) string {
	if len(replacements) == 0 {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, ref := range refs {
		repl, ok := replacements[ref.RawPath]
		if !ok || repl == ref.RawPath {
			continue
		}
		b.WriteString(content[last:ref.Start])
		b.WriteString(repl)
		last = ref.End
	}
	b.WriteString(content[last:])
	return b.String()
}
