package project

import "path/filepath"

// DirType classifies an artifact directory.
type DirType int

const (
	Dependencies DirType = iota
	Build
	Cache
)

// String returns a display label for the directory type.
func (t DirType) String() string {
	switch t {
	case Build:
		return "build"
	case Cache:
		return "cache"
	default:
		return "dependencies"
	}
}

// ArtifactDir is a directory, relative to the project root, whose contents
// can be deleted and regenerated by the ecosystem's tooling.
type ArtifactDir struct {
	Name string
	Type DirType
}

// Rule describes how a base type is recognized and what it leaves behind.
type Rule struct {
	BaseType BaseType
	Manifest string
	Dirs     []ArtifactDir
	Variants []Variant
}

// VariantRule describes how a variant is recognized inside its base type.
type VariantRule struct {
	Variant  Variant
	BaseType BaseType
	Markers  []string
	Dirs     []ArtifactDir
}

// Manifest detection order; the first manifest present wins.
var rules = []Rule{
	{
		BaseType: Cargo,
		Manifest: "Cargo.toml",
		Dirs:     []ArtifactDir{{Name: "target", Type: Build}},
	},
	{
		BaseType: Composer,
		Manifest: "composer.json",
		Dirs:     []ArtifactDir{{Name: "vendor", Type: Dependencies}},
		Variants: []Variant{Symfony},
	},
	{
		BaseType: NPM,
		Manifest: "package.json",
		Dirs:     []ArtifactDir{{Name: "node_modules", Type: Dependencies}},
		Variants: []Variant{NextJS, Docusaurus, Angular, Gatsby},
	},
}

var variantRules = map[Variant]VariantRule{
	Symfony: {
		Variant:  Symfony,
		BaseType: Composer,
		Markers:  []string{"symfony.lock", filepath.Join("bin", "console")},
		Dirs:     []ArtifactDir{{Name: filepath.Join("var", "cache"), Type: Cache}},
	},
	NextJS: {
		Variant:  NextJS,
		BaseType: NPM,
		Markers:  []string{"next.config.js", "next.config.mjs", "next.config.ts"},
		Dirs:     []ArtifactDir{{Name: ".next", Type: Build}},
	},
	Docusaurus: {
		Variant:  Docusaurus,
		BaseType: NPM,
		Markers:  []string{"docusaurus.config.js", "docusaurus.config.ts"},
		Dirs: []ArtifactDir{
			{Name: ".docusaurus", Type: Cache},
			{Name: "build", Type: Build},
		},
	},
	Angular: {
		Variant:  Angular,
		BaseType: NPM,
		Markers:  []string{"angular.json"},
		Dirs:     []ArtifactDir{{Name: filepath.Join(".angular", "cache"), Type: Cache}},
	},
	Gatsby: {
		Variant:  Gatsby,
		BaseType: NPM,
		Markers:  []string{"gatsby-config.js", "gatsby-config.ts"},
		Dirs: []ArtifactDir{
			{Name: ".cache", Type: Cache},
			{Name: "public", Type: Build},
		},
	},
}

// RuleFor returns the rule for a base type.
func RuleFor(b BaseType) (Rule, bool) {
	for _, r := range rules {
		if r.BaseType == b {
			return r, true
		}
	}
	return Rule{}, false
}

// VariantRuleFor returns the rule for a variant.
func VariantRuleFor(v Variant) (VariantRule, bool) {
	r, ok := variantRules[v]
	return r, ok
}

// DetectBaseType returns the base type whose manifest appears in fileNames.
func DetectBaseType(fileNames []string) (BaseType, bool) {
	present := make(map[string]bool, len(fileNames))
	for _, name := range fileNames {
		present[name] = true
	}
	for _, r := range rules {
		if present[r.Manifest] {
			return r.BaseType, true
		}
	}
	return "", false
}

// IsDependencyDir reports whether name is the artifact directory of a base
// type (node_modules, vendor, target). Discovery never descends into these.
func IsDependencyDir(name string) bool {
	for _, r := range rules {
		for _, d := range r.Dirs {
			if d.Name == name {
				return true
			}
		}
	}
	return false
}

// TopLevelDirs returns the first path segment of every artifact directory
// of p, used to prune traversal below a detected project.
func TopLevelDirs(p Project) map[string]bool {
	out := make(map[string]bool)
	for _, d := range ArtifactDirs(p) {
		out[firstSegment(d.Name)] = true
	}
	return out
}

// ArtifactDirs returns every artifact directory of p, base type first,
// then each variant in order. Duplicates are removed.
func ArtifactDirs(p Project) []ArtifactDir {
	var dirs []ArtifactDir
	seen := make(map[string]bool)
	add := func(ds []ArtifactDir) {
		for _, d := range ds {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			dirs = append(dirs, d)
		}
	}
	if r, ok := RuleFor(p.BaseType); ok {
		add(r.Dirs)
	}
	for _, v := range p.Variants {
		if vr, ok := variantRules[v]; ok {
			add(vr.Dirs)
		}
	}
	return dirs
}

func firstSegment(rel string) string {
	for i := 0; i < len(rel); i++ {
		if rel[i] == filepath.Separator || rel[i] == '/' {
			return rel[:i]
		}
	}
	return rel
}

// DetectVariants returns the variants of base whose marker files exist.
// exists is called with paths relative to the project root.
func DetectVariants(base BaseType, exists func(rel string) bool) []Variant {
	r, ok := RuleFor(base)
	if !ok {
		return nil
	}
	var found []Variant
	for _, v := range r.Variants {
		vr, ok := VariantRuleFor(v)
		if !ok {
			continue
		}
		for _, marker := range vr.Markers {
			if exists(marker) {
				found = append(found, v)
				break
			}
		}
	}
	return found
}
