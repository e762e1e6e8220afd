// Package project defines the classification vocabulary shared by every
// other package: the ecosystem a project belongs to, the frameworks detected
// inside it, and the Project record returned by discovery.
package project

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// BaseType is the package-manager ecosystem a project belongs to.
type BaseType string

const (
	Cargo    BaseType = "Cargo"
	Composer BaseType = "Composer"
	NPM      BaseType = "NPM"
)

// BaseTypes lists every known base type in display order.
var BaseTypes = []BaseType{Cargo, Composer, NPM}

// Variant is a framework detected within a base ecosystem.
type Variant string

const (
	// Composer
	Symfony Variant = "Symfony"

	// NPM
	NextJS     Variant = "NextJS"
	Docusaurus Variant = "Docusaurus"
	Angular    Variant = "Angular"
	Gatsby     Variant = "Gatsby"
)

// Variants lists every known variant in display order.
var Variants = []Variant{Symfony, NextJS, Docusaurus, Angular, Gatsby}

// String returns the stable identifier.
func (b BaseType) String() string { return string(b) }

// String returns the stable identifier.
func (v Variant) String() string { return string(v) }

// Project is the unit of cleanup. It is produced by the discovery
// collaborator and passed back unmodified when cleaning.
type Project struct {
	Path     string    `json:"path"`
	BaseType BaseType  `json:"base_type"`
	Variants []Variant `json:"variants,omitempty"`
	Size     int64     `json:"size"`
}

// Name returns the last segment of the project path.
func (p Project) Name() string {
	trimmed := strings.TrimRight(p.Path, "/"+string(filepath.Separator))
	if trimmed == "" {
		return p.Path
	}
	if i := strings.LastIndexAny(trimmed, "/"+string(filepath.Separator)); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// HumanSize formats the reclaimable size using IEC units.
func (p Project) HumanSize() string {
	return FormatBytes(p.Size)
}

// FormatBytes renders a byte count the way project sizes are displayed.
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// TotalSize sums the reclaimable size of a result set.
func TotalSize(projects []Project) int64 {
	var total int64
	for _, p := range projects {
		total += p.Size
	}
	return total
}

// Classification is satisfied by both enumerations, for lookups that accept
// either a base type or a variant.
type Classification interface {
	BaseType | Variant
}
