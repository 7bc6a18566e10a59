package catalog

import (
	"sort"
	"strings"
	"sync"
)

// LanguageInfo captures metadata about a language provider.
type LanguageInfo struct {
	ID         string
	Extensions []string
}

var (
	mu     sync.RWMutex
	byLang = make(map[string]LanguageInfo)
	byExt  = make(map[string]LanguageInfo)
)

// Register stores language metadata for extension lookups. A later
// registration for the same language replaces the earlier one.
func Register(info LanguageInfo) {
	if info.ID == "" {
		return
	}

	info.Extensions = uniqueExtensions(info.Extensions)

	mu.Lock()
	defer mu.Unlock()

	if prev, ok := byLang[strings.ToLower(info.ID)]; ok {
		for _, ext := range prev.Extensions {
			if byExt[ext].ID == prev.ID {
				delete(byExt, ext)
			}
		}
	}

	byLang[strings.ToLower(info.ID)] = info
	for _, ext := range info.Extensions {
		byExt[ext] = info
	}
}

// LookupByExtension returns the language info associated with a file extension.
func LookupByExtension(ext string) (LanguageInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	info, ok := byExt[normalizeExtension(ext)]
	return info, ok
}

// LookupByPath matches the longest registered extension that ends the file
// name, so "types.d.ts" resolves through ".d.ts" before ".ts".
func LookupByPath(name string) (LanguageInfo, bool) {
	lower := strings.ToLower(name)

	mu.RLock()
	defer mu.RUnlock()

	var (
		best    LanguageInfo
		bestLen int
	)
	for ext, info := range byExt {
		if len(ext) > bestLen && len(lower) > len(ext) && strings.HasSuffix(lower, ext) {
			best, bestLen = info, len(ext)
		}
	}
	return best, bestLen > 0
}

// Languages returns all registered language infos sorted by language ID.
func Languages() []LanguageInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]LanguageInfo, 0, len(byLang))
	for _, info := range byLang {
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

func normalizeExtension(ext string) string {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized != "" && !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	return normalized
}

func uniqueExtensions(exts []string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(exts))
	for _, ext := range exts {
		normalized := normalizeExtension(ext)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
