package imports

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two specifier forms the engine compares.
type Kind int

const (
	KindRelative Kind = iota
	KindAliased
)

func (k Kind) String() string {
	if k == KindAliased {
		return "aliased"
	}
	return "relative"
}

// Form is one candidate spelling of an import specifier together with
// its segment count.
type Form struct {
	Text     string
	Segments int
	Kind     Kind
}

// NewForm builds a Form from raw specifier text.
func NewForm(text string) Form {
	kind := KindAliased
	if IsRelative(text) {
		kind = KindRelative
	}
	return Form{Text: text, Segments: SegmentCount(text), Kind: kind}
}

// Policy decides the outcome when the written specifier and its best
// alternative have the same segment count.
type Policy int

const (
	KeepOriginal Policy = iota
	PreferAlias
	PreferRelative
)

func (p Policy) String() string {
	switch p {
	case PreferAlias:
		return "prefer-alias"
	case PreferRelative:
		return "prefer-relative"
	}
	return "keep-original"
}

// ParsePolicy maps the configuration spelling to a Policy.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(raw) {
	case "", "keep-original":
		return KeepOriginal, nil
	case "prefer-alias":
		return PreferAlias, nil
	case "prefer-relative":
		return PreferRelative, nil
	}
	return KeepOriginal, fmt.Errorf("unknown tie-break policy: %q", raw)
}

func (p *Policy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParsePolicy(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Policy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// Verdict is the outcome of comparing a specifier with its best
// alternative. Replace is false for a keep verdict.
type Verdict struct {
	Replace     bool
	Alternative Form
}

// Decide compares the written form with its best opposite-kind
// alternative. No alternative, or one with more segments, keeps the
// original; fewer segments replaces it; on an exact tie the policy
// rules. Pure and total: every input gets a definite verdict.
func Decide(original Form, alt *Form, policy Policy) Verdict {
	if alt == nil {
		return Verdict{}
	}
	switch {
	case alt.Segments < original.Segments:
		return Verdict{Replace: true, Alternative: *alt}
	case alt.Segments > original.Segments:
		return Verdict{}
	}

	switch policy {
	case PreferAlias:
		if alt.Kind == KindAliased {
			return Verdict{Replace: true, Alternative: *alt}
		}
	case PreferRelative:
		if alt.Kind == KindRelative {
			return Verdict{Replace: true, Alternative: *alt}
		}
	}
	return Verdict{}
}
