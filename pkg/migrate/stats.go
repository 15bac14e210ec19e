package migrate

// Stats summarises a migration run.
type Stats struct {
	TotalElements int      `json:"totalElements" yaml:"totalElements"`
	Migrated      int      `json:"migrated" yaml:"migrated"`
	Warnings      []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors        []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Merge folds other into s and returns the combined stats.
func (s Stats) Merge(other Stats) Stats {
	return Stats{
		TotalElements: s.TotalElements + other.TotalElements,
		Migrated:      s.Migrated + other.Migrated,
		Warnings:      concat(s.Warnings, other.Warnings),
		Errors:        concat(s.Errors, other.Errors),
	}
}

// OK reports whether the run recorded no errors.
func (s Stats) OK() bool {
	return len(s.Errors) == 0
}

func concat(left, right []string) []string {
	if len(left)+len(right) == 0 {
		return nil
	}
	out := make([]string, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...)
}
