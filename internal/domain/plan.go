package domain

import (
	"golang.org/x/text/cases"
)

// BuildPlan applies Transform to every item, preserving input order.
// Duplicated new names are kept; see FindCollisions.
func BuildPlan(items []Item, spec RenameSpec, re Replacer) Plan {
	plan := make(Plan, len(items))
	for i, item := range items {
		plan[i] = PlanEntry{
			Identity: item.Identity,
			OldName:  item.Name,
			NewName:  Transform(item.Name, spec, re),
		}
	}
	return plan
}

// Collision is a group of plan entries that would end up with the same name.
type Collision struct {
	NewName string
	Entries []PlanEntry
}

// NamespaceFunc scopes collision checks, e.g. to a directory. Entries in
// different namespaces never collide.
type NamespaceFunc func(PlanEntry) string

// FindCollisions groups entries whose new names are equal under case folding
// within the same namespace. Groups are returned in order of first appearance.
// A nil namespace treats the whole plan as one namespace.
func FindCollisions(plan Plan, namespace NamespaceFunc) []Collision {
	type key struct {
		ns   string
		name string
	}

	fold := cases.Fold()
	groups := make(map[key][]int)
	var order []key
	for i, e := range plan {
		k := key{name: fold.String(e.NewName)}
		if namespace != nil {
			k.ns = namespace(e)
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	var collisions []Collision
	for _, k := range order {
		idx := groups[k]
		if len(idx) < 2 {
			continue
		}
		c := Collision{NewName: plan[idx[0]].NewName}
		for _, i := range idx {
			c.Entries = append(c.Entries, plan[i])
		}
		collisions = append(collisions, c)
	}
	return collisions
}
