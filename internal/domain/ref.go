package domain

import "strings"

// ProductRef namespaces a native id with the source that issued it.
// Ids are only unique within one source.
type ProductRef struct {
	Source   Source
	NativeID string
}

// NewRef builds the reference of a product from its source and native id
func NewRef(source Source, nativeID string) ProductRef {
	return ProductRef{Source: source, NativeID: nativeID}
}

// String renders the opaque external form "<source>:<id>"
func (r ProductRef) String() string {
	return string(r.Source) + ":" + r.NativeID
}

// ParseProductRef splits an opaque reference. ok is false for bare ids,
// which carry no source and must be resolved heuristically.
func ParseProductRef(s string) (ProductRef, bool) {
	prefix, native, found := strings.Cut(s, ":")
	if !found || native == "" {
		return ProductRef{}, false
	}
	switch Source(prefix) {
	case SourceDatabase, SourceFrontend:
		return ProductRef{Source: Source(prefix), NativeID: native}, true
	}
	return ProductRef{}, false
}
