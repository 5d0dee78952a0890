package models

import (
	"errors"
	"hash/fnv"
	"slices"
	"strings"
)

// MaxTagNameLength is the longest tag name a table may carry
const MaxTagNameLength = 255

var (
	ErrEmptyTagName        = errors.New("tag name cannot be empty")
	ErrTagNameTooLong      = errors.New("tag name cannot exceed 255 characters")
	ErrInvalidTagCharacter = errors.New("tag name may only contain letters and digits")
	ErrDuplicateTag        = errors.New("tag already exists on table")
)

// Tag is the registry entry for a tag name. Tables only store the
// name; color and description live in tags.yaml.
type Tag struct {
	Name        string `yaml:"name"`
	Color       string `yaml:"color,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// TagRegistry is the on-disk form of tags.yaml
type TagRegistry struct {
	Tags []Tag `yaml:"tags"`
}

// TagPalette is the set of colors handed out to new tags
var TagPalette = []string{
	"#e06c75",
	"#61afef",
	"#98c379",
	"#e5c07b",
	"#c678dd",
	"#56b6c2",
	"#d19a66",
	"#be5046",
	"#7f848e",
	"#528bff",
}

// TagColor picks the color for a tag: the registry color when there is
// one, else a palette entry chosen by hashing the name. Different
// spellings of a name share a color.
func TagColor(name, registryColor string) string {
	if registryColor != "" {
		return registryColor
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(name)))
	return TagPalette[h.Sum32()%uint32(len(TagPalette))]
}

// ValidateTagName checks a tag name against the table tag rules:
// 1 to 255 ASCII letters or digits, either case
func ValidateTagName(name string) error {
	if name == "" {
		return ErrEmptyTagName
	}

	if len(name) > MaxTagNameLength {
		return ErrTagNameTooLong
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return ErrInvalidTagCharacter
		}
	}

	return nil
}

// IsValidNewTag reports whether candidate can be added next to existing.
// Duplicate detection is an exact, case-sensitive comparison.
func IsValidNewTag(candidate string, existing []string) bool {
	if ValidateTagName(candidate) != nil {
		return false
	}
	return !HasExactTag(existing, candidate)
}

// HasExactTag reports whether tags holds tag, compared byte for byte
func HasExactTag(tags []string, tag string) bool {
	return slices.Contains(tags, tag)
}
