// Package badge maps classification values to the badge used to render
// them. The mapping is a table: supporting a new variant means adding an
// entry, not a branch in every view.
package badge

import (
	"net/url"
	"strings"

	"github.com/marcus/dcleaner/internal/project"
)

const shieldsBase = "https://img.shields.io/badge/"

// Descriptor fully determines a renderable badge.
type Descriptor struct {
	ImageRef string // shields.io badge path, e.g. "NPM-%23CB3837.svg"
	LogoRef  string // simple-icons slug, e.g. "npm"
	ColorRef string // background color; empty means neutral
}

var table = map[string]Descriptor{
	string(project.NPM): {
		ImageRef: "NPM-%23CB3837.svg",
		LogoRef:  "npm",
		ColorRef: "#CB3837",
	},
	string(project.Composer): {
		ImageRef: "php-%23777BB4.svg",
		LogoRef:  "php",
		ColorRef: "#777BB4",
	},
	string(project.NextJS): {
		ImageRef: "Next-black",
		LogoRef:  "next.js",
		ColorRef: "#000000",
	},
	string(project.Symfony): {
		ImageRef: "symfony-%23000000.svg",
		LogoRef:  "symfony",
		ColorRef: "#000000",
	},
	string(project.Angular): {
		ImageRef: "angular-%23DD0031.svg",
		LogoRef:  "angular",
		ColorRef: "#DD0031",
	},
	string(project.Gatsby): {
		ImageRef: "Gatsby-%23663399.svg",
		LogoRef:  "gatsby",
		ColorRef: "#663399",
	},
}

// Resolve returns the badge for a base type or variant. The boolean is
// false for values without a table entry; callers then render the raw
// identifier as a neutral label.
func Resolve[T project.Classification](v T) (Descriptor, bool) {
	return lookup(string(v))
}

func lookup(id string) (Descriptor, bool) {
	d, ok := table[id]
	return d, ok
}

// URL returns the shields.io image URL for the badge.
func (d Descriptor) URL() string {
	q := url.Values{}
	q.Set("style", "flat-square")
	q.Set("logo", d.LogoRef)
	q.Set("logoColor", "white")
	return shieldsBase + d.ImageRef + "?" + q.Encode()
}

// Label returns the text shown on the badge: the image name up to its
// color suffix.
func (d Descriptor) Label() string {
	name := strings.TrimSuffix(d.ImageRef, ".svg")
	if i := strings.LastIndex(name, "-"); i > 0 {
		name = name[:i]
	}
	return name
}
