// Package analyzer walks a local source tree and summarizes its languages,
// likely entry points and folder layout.
package analyzer

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Analyze walks root once and returns its structure summary.
//
// Directories named in the skip set are removed from the pending list
// before the walk reaches them, so nothing beneath them is ever read.
// Files of a directory are processed before its subdirectories, and
// subdirectories are visited depth-first in name order.
func Analyze(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &TraversalError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &TraversalError{Path: root, Err: errors.New("not a directory")}
	}

	c := newCounter()
	var folders []string

	// Stack of slash-separated paths relative to root; "" is the root.
	stack := []string{""}
	for len(stack) > 0 {
		rel := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if rel != "" {
			folders = append(folders, rel+"/")
		}

		dir := filepath.Join(root, filepath.FromSlash(rel))
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, &TraversalError{Path: dir, Err: err}
		}

		var children []string
		for _, e := range entries {
			switch {
			case e.IsDir():
				children = append(children, e.Name())
			case e.Type()&fs.ModeSymlink != 0 && isDirSymlink(filepath.Join(dir, e.Name())):
				// Not followed, not counted.
			default:
				c.file(rel, e.Name())
			}
		}

		children = pruneSkipped(children)
		// Push in reverse so the first child is visited next.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, path.Join(rel, children[i]))
		}
	}

	sort.Strings(folders)
	if folders == nil {
		folders = []string{}
	}

	return &Result{
		Languages:       c.languages(),
		EntryPoints:     c.entryPoints,
		FolderStructure: folders,
		TotalFiles:      c.total,
	}, nil
}

// pruneSkipped filters skip-set names out of the pending children in place.
func pruneSkipped(children []string) []string {
	kept := children[:0]
	for _, name := range children {
		if !IsSkippedDir(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

func isDirSymlink(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// lowerExt returns the lowercase extension of name, including the dot.
// A leading dot does not start an extension (".bashrc" has none), and a
// trailing dot yields no extension.
func lowerExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// counter accumulates per-file statistics during a walk.
type counter struct {
	total       int
	counts      map[string]int
	order       []string
	entryPoints []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int), entryPoints: []string{}}
}

func (c *counter) file(rel, name string) {
	c.total++
	if lang, ok := LanguageFor(name); ok {
		if _, seen := c.counts[lang]; !seen {
			c.order = append(c.order, lang)
		}
		c.counts[lang]++
	}
	if IsEntryPoint(name) {
		c.entryPoints = append(c.entryPoints, path.Join(rel, name))
	}
}

// languages returns counts ordered most-common first, stable on ties.
func (c *counter) languages() []LanguageCount {
	out := make([]LanguageCount, 0, len(c.order))
	for _, lang := range c.order {
		out = append(out, LanguageCount{Language: lang, Files: c.counts[lang]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Files > out[j].Files
	})
	return out
}
