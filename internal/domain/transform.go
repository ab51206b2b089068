package domain

// Replacer rewrites every match of a compiled pattern within a name.
type Replacer interface {
	ReplaceAll(name, replacement string) string
}

// Transform computes the new name for oldName under spec.
// re must be the compiled form of spec.Pattern, or nil when the pattern is empty.
//
// Prefix and postfix modes take precedence over the pattern: when either flag
// is set the regex result is discarded. With neither a pattern nor an affix
// flag, every name collapses to spec.Replacement.
func Transform(oldName string, spec RenameSpec, re Replacer) string {
	newName := spec.Replacement

	if spec.Pattern != "" && re != nil {
		newName = re.ReplaceAll(oldName, spec.Replacement)
	}

	if spec.IsPrefix || spec.IsPostfix {
		var prefix, postfix string
		if spec.IsPrefix {
			prefix = spec.Replacement
		}
		if spec.IsPostfix {
			postfix = spec.Replacement
		}
		newName = prefix + oldName + postfix
	}

	return newName
}
