/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package check

// Category identifies one validation pass over the working tree.
type Category string

const (
	CategoryStyle    Category = "style"
	CategorySyntax   Category = "syntax"
	CategoryTemplate Category = "template"
	CategoryERB      Category = "erb"
	CategoryScript   Category = "script"
	CategoryData     Category = "data"
)

// Categories lists every category in the fixed execution order.
var Categories = []Category{
	CategoryStyle,
	CategorySyntax,
	CategoryTemplate,
	CategoryERB,
	CategoryScript,
	CategoryData,
}

// Title returns the human-facing header printed before a category runs.
func (c Category) Title() string {
	switch c {
	case CategoryStyle:
		return "Checking puppet manifest style"
	case CategorySyntax:
		return "Checking puppet manifest syntax"
	case CategoryTemplate:
		return "Checking EPP template syntax"
	case CategoryERB:
		return "Checking ERB template syntax"
	case CategoryScript:
		return "Checking ruby script syntax"
	case CategoryData:
		return "Checking YAML data files"
	default:
		return string(c)
	}
}

// Pattern returns the doublestar glob matching the category's files.
func (c Category) Pattern() string {
	switch c {
	case CategoryStyle, CategorySyntax:
		return "**/*.pp"
	case CategoryTemplate:
		return "**/*.epp"
	case CategoryERB:
		return "**/*.erb"
	case CategoryScript:
		return "**/*.rb"
	case CategoryData:
		return "**/*.yaml"
	default:
		return ""
	}
}

// Outcome is the per-file validation result.
type Outcome struct {
	File        string `json:"file"`
	Passed      bool   `json:"passed"`
	Diagnostics string `json:"diagnostics,omitempty"`
}

// CategoryResult collects the outcomes of one category pass.
type CategoryResult struct {
	Category Category  `json:"category"`
	Outcomes []Outcome `json:"outcomes"`
	Failed   int       `json:"failed"`
}

// Result is the aggregate of a full check run. Failed counts failing
// files across all categories; any non-zero value blocks the commit.
type Result struct {
	Categories []CategoryResult `json:"categories"`
	Checked    int              `json:"checked"`
	Failed     int              `json:"failed"`
}

// Ok reports whether every validated file passed.
func (r *Result) Ok() bool {
	return r.Failed == 0
}
