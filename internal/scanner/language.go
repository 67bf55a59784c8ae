package scanner

import (
	"path/filepath"
	"strings"
)

// langSpec describes line-classification rules for one language: which
// prefixes start a line comment and which delimiters open and close block
// comments. Good enough for composition counts; this is not a parser.
type langSpec struct {
	Name       string
	LineMarks  []string
	BlockOpen  string
	BlockClose string
}

var cFamily = langSpec{LineMarks: []string{"//"}, BlockOpen: "/*", BlockClose: "*/"}

// langByExt maps lowercase file extensions to language specs.
var langByExt = map[string]langSpec{
	".go":    {Name: "Go", LineMarks: []string{"//"}, BlockOpen: "/*", BlockClose: "*/"},
	".rs":    {Name: "Rust", LineMarks: []string{"//"}, BlockOpen: "/*", BlockClose: "*/"},
	".c":     named(cFamily, "C"),
	".h":     named(cFamily, "C Header"),
	".cc":    named(cFamily, "C++"),
	".cpp":   named(cFamily, "C++"),
	".hpp":   named(cFamily, "C++ Header"),
	".java":  named(cFamily, "Java"),
	".cs":    named(cFamily, "C#"),
	".js":    named(cFamily, "JavaScript"),
	".jsx":   named(cFamily, "JSX"),
	".ts":    named(cFamily, "TypeScript"),
	".tsx":   named(cFamily, "TSX"),
	".swift": named(cFamily, "Swift"),
	".kt":    named(cFamily, "Kotlin"),
	".scala": named(cFamily, "Scala"),
	".php":   {Name: "PHP", LineMarks: []string{"//", "#"}, BlockOpen: "/*", BlockClose: "*/"},
	".py":    {Name: "Python", LineMarks: []string{"#"}},
	".rb":    {Name: "Ruby", LineMarks: []string{"#"}},
	".sh":    {Name: "Shell", LineMarks: []string{"#"}},
	".bash":  {Name: "Shell", LineMarks: []string{"#"}},
	".pl":    {Name: "Perl", LineMarks: []string{"#"}},
	".r":     {Name: "R", LineMarks: []string{"#"}},
	".lua":   {Name: "Lua", LineMarks: []string{"--"}},
	".sql":   {Name: "SQL", LineMarks: []string{"--"}, BlockOpen: "/*", BlockClose: "*/"},
	".hs":    {Name: "Haskell", LineMarks: []string{"--"}},
	".ex":    {Name: "Elixir", LineMarks: []string{"#"}},
	".exs":   {Name: "Elixir", LineMarks: []string{"#"}},
	".zig":   {Name: "Zig", LineMarks: []string{"//"}},
	".html":  {Name: "HTML", BlockOpen: "<!--", BlockClose: "-->"},
	".xml":   {Name: "XML", BlockOpen: "<!--", BlockClose: "-->"},
	".css":   {Name: "CSS", BlockOpen: "/*", BlockClose: "*/"},
	".scss":  {Name: "SCSS", LineMarks: []string{"//"}, BlockOpen: "/*", BlockClose: "*/"},
	".md":    {Name: "Markdown"},
	".json":  {Name: "JSON"},
	".yaml":  {Name: "YAML", LineMarks: []string{"#"}},
	".yml":   {Name: "YAML", LineMarks: []string{"#"}},
	".toml":  {Name: "TOML", LineMarks: []string{"#"}},
	".proto": {Name: "Protobuf", LineMarks: []string{"//"}, BlockOpen: "/*", BlockClose: "*/"},
	".tf":    {Name: "Terraform", LineMarks: []string{"#", "//"}, BlockOpen: "/*", BlockClose: "*/"},
	".txt":   {Name: "Plain Text"},
}

// langByName maps exact (lowercased) file names without a useful extension.
var langByName = map[string]langSpec{
	"makefile":   {Name: "Makefile", LineMarks: []string{"#"}},
	"dockerfile": {Name: "Dockerfile", LineMarks: []string{"#"}},
	"rakefile":   {Name: "Ruby", LineMarks: []string{"#"}},
}

func named(spec langSpec, name string) langSpec {
	spec.Name = name
	return spec
}

// detectLang returns the language spec for a path, or ok=false for files the
// scanner does not count (binaries, unknown formats).
func detectLang(path string) (langSpec, bool) {
	base := strings.ToLower(filepath.Base(path))
	if spec, ok := langByName[base]; ok {
		return spec, true
	}
	ext := strings.ToLower(filepath.Ext(base))
	spec, ok := langByExt[ext]
	return spec, ok
}
