package commands

import "strings"

// mutatingCommandIDs lists registry command IDs that can write the store.
// The root command's select shorthand resolves to "select".
var mutatingCommandIDs = map[string]struct{}{
	"add":         {},
	"select":      {},
	"rename":      {},
	"remove":      {},
	"goto_add":    {},
	"goto_update": {},
	"goto_rename": {},
	"goto_remove": {},
	"import":      {},
	"clone":       {},
}

func init() {
	for id := range mutatingCommandIDs {
		meta, ok := Registry[id]
		if !ok {
			continue
		}
		meta.MutatesStore = true
		Registry[id] = meta
	}
}

// ResolveCommandID resolves a CLI command path to a registry command ID.
// Example: "goto add" -> "goto_add"
func ResolveCommandID(path string) (string, bool) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", false
	}

	if _, ok := Registry[trimmed]; ok {
		return trimmed, true
	}

	underscored := strings.ReplaceAll(trimmed, " ", "_")
	if _, ok := Registry[underscored]; ok {
		return underscored, true
	}

	return "", false
}

// LookupMetaByPath resolves a CLI command path and returns the registry metadata.
func LookupMetaByPath(path string) (string, Meta, bool) {
	id, ok := ResolveCommandID(path)
	if !ok {
		return "", Meta{}, false
	}
	meta, ok := Registry[id]
	return id, meta, ok
}

// Mutates reports whether the command at path writes the store.
func Mutates(path string) bool {
	_, meta, ok := LookupMetaByPath(path)
	return ok && meta.MutatesStore
}
