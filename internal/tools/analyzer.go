// Package tools holds the read-only helpers injected into processing
// crews: codebase analysis and filesystem access.
package tools

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Analysis summarizes what a project directory contains.
type Analysis struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	KeyFiles   []string `json:"key_files"`
}

// Analyzer walks a project tree and detects languages by extension and
// frameworks by indicator files.
type Analyzer struct {
	languageExtensions  map[string][]string
	frameworkIndicators map[string][]string
	keyFiles            map[string]struct{}
	excludedDirs        map[string]struct{}
}

// NewAnalyzer returns an analyzer with the default detection tables.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		languageExtensions: map[string][]string{
			"JavaScript": {".js", ".jsx", ".mjs"},
			"TypeScript": {".ts", ".tsx"},
			"Ruby":       {".rb"},
			"HTML":       {".html", ".htm"},
			"CSS":        {".css", ".scss", ".sass"},
			"Apex":       {".cls", ".trigger"},
			"Go":         {".go"},
			"Python":     {".py"},
		},
		frameworkIndicators: map[string][]string{
			"React":         {"package.json", "src/App.jsx", "src/App.js", "src/App.tsx"},
			"Ruby on Rails": {"Gemfile", "config/application.rb"},
			"Salesforce":    {"sfdx-project.json", "force-app"},
			"Vue":           {"vue.config.js"},
			"Angular":       {"angular.json"},
		},
		keyFiles: map[string]struct{}{
			"package.json":     {},
			"Gemfile":          {},
			"go.mod":           {},
			"requirements.txt": {},
			"pom.xml":          {},
		},
		excludedDirs: map[string]struct{}{
			"node_modules": {},
			"vendor":       {},
			"dist":         {},
			"build":        {},
			".git":         {},
		},
	}
}

// Analyze walks the directory and reports detected technologies. Walk
// errors on individual entries are skipped; only a failure to read the
// root is returned.
func (a *Analyzer) Analyze(dir string) (Analysis, error) {
	languages := map[string]struct{}{}
	frameworks := map[string]struct{}{}
	var keyFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			return nil
		}
		if d.IsDir() {
			if _, excluded := a.excludedDirs[d.Name()]; excluded {
				return filepath.SkipDir
			}
			a.detectFrameworkDir(d.Name(), frameworks)
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		a.detectLanguage(d.Name(), languages)
		a.detectFramework(rel, d.Name(), frameworks)
		if _, ok := a.keyFiles[d.Name()]; ok {
			keyFiles = append(keyFiles, rel)
		}
		return nil
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("tools: analyze %s: %w", dir, err)
	}

	return Analysis{
		Languages:  sortedKeys(languages),
		Frameworks: sortedKeys(frameworks),
		KeyFiles:   keyFiles,
	}, nil
}

func (a *Analyzer) detectLanguage(filename string, found map[string]struct{}) {
	ext := strings.ToLower(filepath.Ext(filename))
	for language, extensions := range a.languageExtensions {
		for _, candidate := range extensions {
			if ext == candidate {
				found[language] = struct{}{}
			}
		}
	}
}

func (a *Analyzer) detectFramework(relPath, filename string, found map[string]struct{}) {
	for framework, indicators := range a.frameworkIndicators {
		for _, indicator := range indicators {
			if relPath == indicator || filename == indicator {
				found[framework] = struct{}{}
			}
		}
	}
}

func (a *Analyzer) detectFrameworkDir(dirName string, found map[string]struct{}) {
	for framework, indicators := range a.frameworkIndicators {
		for _, indicator := range indicators {
			if dirName == indicator {
				found[framework] = struct{}{}
			}
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Summary renders the analysis for inclusion in a crew prompt.
func (a Analysis) Summary() string {
	return fmt.Sprintf("Languages: %s\nFrameworks: %s\nKey files: %s",
		orNone(a.Languages), orNone(a.Frameworks), orNone(a.KeyFiles))
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none detected"
	}
	return strings.Join(items, ", ")
}
