// Package location parses composite location strings and renders them
// back in canonical form. A composite string is a "/"-delimited
// sequence of free-text segments, each of which may name a region
// known to the reference store.
//
// The package is pure: it never mutates the store and performs no I/O.
package location

import (
	"fmt"
	"strings"

	"github.com/amphdata/amprep/pkg/store"
)

// Delimiter separates segments of a composite location string.
const Delimiter = "/"

// Component is one segment of a resolved location. It either carries
// a region record from the store or passes the raw segment text
// through untouched.
type Component struct {
	// Raw is the original segment text. It is always set, so an
	// unresolved component can round-trip verbatim.
	Raw string

	// Record is valid only when Resolved is true.
	Record store.RegionRecord

	// Resolved reports whether the segment matched a store record.
	Resolved bool
}

// String renders the component. A resolved component renders as
// "continent country region"; an unresolved one as its original text.
func (c Component) String() string {
	if !c.Resolved {
		return c.Raw
	}
	return fmt.Sprintf(
		"%s %s %s",
		c.Record.Continent, c.Record.Country, c.Record.Region,
	)
}

// Split breaks a composite location string into its segments. An
// empty composite yields a single empty segment, not an empty slice,
// so the result always aligns index-by-index with the input column.
func Split(composite string) []string {
	return strings.Split(composite, Delimiter)
}

// ResolveSegment matches one segment against the store. An exact
// case-insensitive key match wins; otherwise the first record, in
// store insertion order, whose region name occurs inside the segment
// is used. When nothing matches the raw segment is passed through.
func ResolveSegment(segment string, st store.Store) Component {
	if rec, ok := st.Lookup(segment); ok {
		return Component{Raw: segment, Record: rec, Resolved: true}
	}

	seg := strings.ToLower(segment)
	for _, rec := range st.Regions() {
		name := strings.ToLower(rec.Region)
		if name == "" {
			continue
		}
		if strings.Contains(seg, name) {
			return Component{Raw: segment, Record: rec, Resolved: true}
		}
	}

	return Component{Raw: segment}
}

// Resolve splits a composite string and resolves every segment.
func Resolve(composite string, st store.Store) []Component {
	segments := Split(composite)
	res := make([]Component, len(segments))
	for i, seg := range segments {
		res[i] = ResolveSegment(seg, st)
	}
	return res
}

// Render joins resolved components back into a "/"-delimited string.
// For segments that resolved, Render(Resolve(s)) is deterministic for
// a fixed store; unresolved segments reproduce their input verbatim.
func Render(components []Component) string {
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = c.String()
	}
	return strings.Join(parts, Delimiter)
}

// FindUnknown returns the segments of a composite string that have no
// exact record in the store. The check uses key lookup only, a
// substring match does not make a segment known; such segments stay
// candidates for external resolution under their own name.
func FindUnknown(composite string, st store.Store) []string {
	var res []string
	for _, seg := range Split(composite) {
		if seg == "" {
			continue
		}
		if _, ok := st.Lookup(seg); !ok {
			res = append(res, seg)
		}
	}
	return res
}
