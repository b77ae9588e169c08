// Package docsearch answers function/documentation lookups against the
// static library catalog.
package docsearch

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	maxMatchesPerLibrary = 15
	queryCacheSize       = 512
)

// Match is one ranked function hit.
type Match struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
}

// LibraryResult is the per-library block of a search response.
type LibraryResult struct {
	Library      string   `json:"library"`
	Available    bool     `json:"available"`
	DocURL       string   `json:"docUrl"`
	Matches      []Match  `json:"matches"`
	MatchCount   int      `json:"matchCount"`
	LibraryMatch bool     `json:"libraryMatch"`
	HumanMatches []string `json:"humanMatches"`
	HumanTerms   []string `json:"humanTerms"`
}

// LibraryInfo describes one catalog library.
type LibraryInfo struct {
	Name        string `json:"name"`
	Available   bool   `json:"available"`
	DocTemplate string `json:"docTemplate"`
}

// FunctionInfo is the detail view for a single function.
type FunctionInfo struct {
	Library   string `json:"library"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Doc       string `json:"doc"`
	DocURL    string `json:"docUrl"`
}

// Service performs catalog searches with a per-query LRU cache.
type Service struct {
	cache *lru.Cache[string, []LibraryResult]
}

func New() *Service {
	cache, err := lru.New[string, []LibraryResult](queryCacheSize)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	return &Service{cache: cache}
}

// Libraries lists the catalog in presentation order.
func (s *Service) Libraries() []LibraryInfo {
	out := make([]LibraryInfo, 0, len(libraries))
	for _, name := range libraries {
		_, available := functionCatalog[name]
		out = append(out, LibraryInfo{
			Name:        name,
			Available:   available,
			DocTemplate: docURLTemplates[name],
		})
	}
	return out
}

// Search resolves a raw query against every library. A dotted query such as
// "numpy.sqrt" is searched by its last segment. The returned query is the
// effective term.
func (s *Service) Search(raw string) (string, []LibraryResult) {
	raw = strings.TrimSpace(raw)
	term := raw
	if i := strings.LastIndex(raw, "."); i >= 0 {
		term = raw[i+1:]
	}

	cacheKey := strings.ToLower(raw)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return term, cached
	}

	results := make([]LibraryResult, 0, len(libraries))
	for _, lib := range libraries {
		results = append(results, searchLibrary(lib, term, raw))
	}
	s.cache.Add(cacheKey, results)
	return term, results
}

// FunctionInfo returns metadata for one function of one library.
func (s *Service) FunctionInfo(lib, name string) (FunctionInfo, bool) {
	lib = strings.TrimSpace(lib)
	name = strings.TrimSpace(name)
	if lib == "" || name == "" {
		return FunctionInfo{}, false
	}
	info := FunctionInfo{
		Library:   lib,
		Name:      name,
		Signature: name,
		DocURL:    docURL(lib, name),
	}
	for _, fn := range functionCatalog[lib] {
		if fn.Name == name {
			info.Signature = fn.Signature
			info.Doc = fn.Doc
			return info, true
		}
	}
	return info, false
}

func searchLibrary(lib, term, rawQuery string) LibraryResult {
	functions, available := functionCatalog[lib]
	res := LibraryResult{
		Library:      lib,
		Available:    available,
		DocURL:       docURL(lib, term),
		Matches:      []Match{},
		HumanMatches: []string{},
		HumanTerms:   []string{},
	}
	if term == "" {
		return res
	}

	lower := strings.ToLower(term)
	res.LibraryMatch = strings.Contains(strings.ToLower(lib), lower) || libAliases[lower] == lib

	var exact, prefix, contains []Function
	for _, fn := range functions {
		fnLower := strings.ToLower(fn.Name)
		switch {
		case fnLower == lower:
			exact = append(exact, fn)
		case strings.HasPrefix(fnLower, lower):
			prefix = append(prefix, fn)
		case strings.Contains(fnLower, lower):
			contains = append(contains, fn)
		}
	}
	ranked := append(append(exact, prefix...), contains...)
	if len(ranked) > maxMatchesPerLibrary {
		ranked = ranked[:maxMatchesPerLibrary]
	}
	for _, fn := range ranked {
		res.Matches = append(res.Matches, Match{Name: fn.Name, Signature: fn.Signature, Doc: fn.Doc})
	}
	res.MatchCount = len(res.Matches)
	res.HumanMatches, res.HumanTerms = humanMatches(rawQuery, lib)
	return res
}

// humanMatches maps natural-language phrases contained in the query to
// function names for one library, deduped in insertion order.
func humanMatches(query, lib string) ([]string, []string) {
	matches := []string{}
	terms := []string{}
	if strings.TrimSpace(query) == "" {
		return matches, terms
	}
	normalized := strings.ToLower(query)

	phrases := make([]string, 0, len(humanSearchMap))
	for phrase := range humanSearchMap {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	seen := make(map[string]struct{})
	for _, phrase := range phrases {
		if !strings.Contains(normalized, phrase) {
			continue
		}
		terms = append(terms, phrase)
		for _, fn := range humanSearchMap[phrase][lib] {
			if _, ok := seen[fn]; ok {
				continue
			}
			seen[fn] = struct{}{}
			matches = append(matches, fn)
		}
	}
	return matches, terms
}

func docURL(lib, name string) string {
	tmpl := docURLTemplates[lib]
	if tmpl == "" || name == "" {
		return ""
	}
	return strings.ReplaceAll(tmpl, "{name}", name)
}
