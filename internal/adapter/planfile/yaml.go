package planfile

import (
	"io"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/omegaatt36/batchren/internal/domain"
)

// Document is the YAML form of a plan preview.
type Document struct {
	Mode       string      `yaml:"mode"`
	Pattern    string      `yaml:"pattern,omitempty"`
	Entries    []Entry     `yaml:"entries"`
	Collisions []Collision `yaml:"collisions,omitempty"`
}

type Entry struct {
	Identity string `yaml:"identity"`
	OldName  string `yaml:"old"`
	NewName  string `yaml:"new"`
}

type Collision struct {
	NewName    string   `yaml:"name"`
	Identities []string `yaml:"identities"`
}

// NewDocument converts a plan and its collisions into a Document.
func NewDocument(spec domain.RenameSpec, plan domain.Plan, collisions []domain.Collision) Document {
	doc := Document{
		Mode:    spec.Mode(),
		Entries: make([]Entry, len(plan)),
	}
	if !spec.AffixOverridesPattern() {
		doc.Pattern = spec.Pattern
	}
	for i, e := range plan {
		doc.Entries[i] = Entry{Identity: string(e.Identity), OldName: e.OldName, NewName: e.NewName}
	}
	for _, c := range collisions {
		col := Collision{NewName: c.NewName}
		for _, e := range c.Entries {
			col.Identities = append(col.Identities, string(e.Identity))
		}
		doc.Collisions = append(doc.Collisions, col)
	}
	return doc
}

// Encode writes the plan as a YAML document.
func Encode(w io.Writer, spec domain.RenameSpec, plan domain.Plan, collisions []domain.Collision) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(spec, plan, collisions)); err != nil {
		return errors.Errorf("encoding plan: %w", err)
	}
	return enc.Close()
}
