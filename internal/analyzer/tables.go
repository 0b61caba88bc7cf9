package analyzer

// langExtensions maps lowercase file extensions to language display names.
// Each extension is its own key: ".tsx" and ".ts" are reported separately.
var langExtensions = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript (JSX)",
	".jsx":   "JavaScript (JSX)",
	".java":  "Java",
	".go":    "Go",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".c":     "C",
	".cpp":   "C++",
	".h":     "C/C++ Header",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
	".scala": "Scala",
	".html":  "HTML",
	".css":   "CSS",
	".scss":  "SCSS",
	".sql":   "SQL",
	".sh":    "Shell",
	".yml":   "YAML",
	".yaml":  "YAML",
	".json":  "JSON",
	".md":    "Markdown",
	".toml":  "TOML",
	".xml":   "XML",
	".r":     "R",
	".lua":   "Lua",
	".dart":  "Dart",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".zig":   "Zig",
}

// entryPointNames lists filenames that usually show how a project is
// started, built or containerized. Matching is exact and case-sensitive.
var entryPointNames = []string{
	"main.py",
	"app.py",
	"manage.py",
	"setup.py",
	"index.js",
	"index.ts",
	"main.go",
	"main.rs",
	"Main.java",
	"Program.cs",
	"main.c",
	"main.cpp",
	"Makefile",
	"Dockerfile",
	"docker-compose.yml",
	"docker-compose.yaml",
}

// skipDirs contains directory names that are never descended into.
var skipDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	"dist":          true,
	"build":         true,
	".next":         true,
	".nuxt":         true,
	"target":        true,
	"vendor":        true,
}

var entryPointSet = func() map[string]bool {
	m := make(map[string]bool, len(entryPointNames))
	for _, name := range entryPointNames {
		m[name] = true
	}
	return m
}()

// LanguageFor returns the display name for the extension of filename.
// The lookup is case-insensitive.
func LanguageFor(filename string) (string, bool) {
	lang, ok := langExtensions[lowerExt(filename)]
	return lang, ok
}

// IsEntryPoint reports whether the basename matches a known entry-point file.
func IsEntryPoint(name string) bool {
	return entryPointSet[name]
}

// IsSkippedDir reports whether a directory with this basename is excluded
// from traversal.
func IsSkippedDir(name string) bool {
	return skipDirs[name]
}
