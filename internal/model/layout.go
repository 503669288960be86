package model

import "strings"

// Section identifies one slot of the widget row
type Section string

const (
	SectionMusic   Section = "Music"
	SectionSepA    Section = "SepA"
	SectionNetwork Section = "Network"
	SectionSepB    Section = "SepB"
	SectionSystem  Section = "System"
	SectionClose   Section = "Close"
)

// IsSeparator reports whether the section is a visual separator
func (s Section) IsSeparator() bool {
	return s == SectionSepA || s == SectionSepB
}

// LayoutPlan is the ordered list of visible sections, left to right
type LayoutPlan []Section

// Contains reports whether the plan includes the given section
func (p LayoutPlan) Contains(section Section) bool {
	for _, s := range p {
		if s == section {
			return true
		}
	}
	return false
}

// Equal reports whether two plans list the same sections in the same order
func (p LayoutPlan) Equal(other LayoutPlan) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the plan as "Music|SepA|Network|..." for logs
func (p LayoutPlan) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = string(s)
	}
	return strings.Join(parts, "|")
}
