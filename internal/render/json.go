// SPDX-License-Identifier: MPL-2.0

package render

import (
	"encoding/json"

	"github.com/Specter099/ssmtree/internal/diff"
	"github.com/Specter099/ssmtree/internal/param"
)

const redactedJSON = "***REDACTED***"

// RecordDoc is the JSON shape of a single parameter.
type RecordDoc struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Type    string `json:"type"`
	Version int64  `json:"version"`
}

// ChangeDoc is the JSON shape of a changed pair in a diff.
type ChangeDoc struct {
	Path     string `json:"path"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
	Type     string `json:"type"`
}

// DiffDoc is the JSON shape of a namespace diff.
type DiffDoc struct {
	Added   []RecordDoc `json:"added"`
	Removed []RecordDoc `json:"removed"`
	Changed []ChangeDoc `json:"changed"`
}

// RecordsJSON marshals the flat parameter list. SecureString values are
// redacted unless includeSecrets is set.
func RecordsJSON(params []param.Parameter, includeSecrets bool) ([]byte, error) {
	docs := make([]RecordDoc, 0, len(params))
	for _, p := range params {
		docs = append(docs, recordDoc(p, includeSecrets))
	}
	return json.MarshalIndent(docs, "", "  ")
}

// DiffJSON marshals a namespace delta with the same redaction rule as
// RecordsJSON.
func DiffJSON(d diff.Delta, includeSecrets bool) ([]byte, error) {
	doc := DiffDoc{
		Added:   []RecordDoc{},
		Removed: []RecordDoc{},
		Changed: []ChangeDoc{},
	}
	for _, p := range d.Added {
		doc.Added = append(doc.Added, recordDoc(p, includeSecrets))
	}
	for _, p := range d.Removed {
		doc.Removed = append(doc.Removed, recordDoc(p, includeSecrets))
	}
	for _, c := range d.Changed {
		doc.Changed = append(doc.Changed, ChangeDoc{
			Path:     c.Old.Path,
			OldValue: redactValue(c.Old, includeSecrets),
			NewValue: redactValue(c.New, includeSecrets),
			Type:     string(c.Old.Kind),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func recordDoc(p param.Parameter, includeSecrets bool) RecordDoc {
	return RecordDoc{
		Path:    p.Path,
		Name:    p.Name,
		Value:   redactValue(p, includeSecrets),
		Type:    string(p.Kind),
		Version: p.Version,
	}
}

func redactValue(p param.Parameter, includeSecrets bool) string {
	if p.IsSecure() && !includeSecrets {
		return redactedJSON
	}
	return p.Value
}
