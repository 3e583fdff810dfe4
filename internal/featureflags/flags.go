// Package featureflags resolves which feature flags are on for a build type
// and picks flag-specific variants of source files.
package featureflags

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Build types.
const (
	Localhost    = "localhost"
	VAGovDev     = "vagovdev"
	VAGovStaging = "vagovstaging"
	VAGovProd    = "vagovprod"
)

// ErrUnknownBuildType is returned for build types with no flag table.
var ErrUnknownBuildType = errors.New("unknown build type")

// Flag is the name a feature flag is exposed under to templates and file
// variants.
type Flag string

// Feature flags.
const (
	FieldRegionalHealthService Flag = "featureFieldRegionalHealthService"
	GraphQLModuleUpdate        Flag = "featureGraphQLModuleUpdate"
)

// Definition ties a flag to its environment-style key.
type Definition struct {
	Key  string
	Flag Flag
}

// Definitions lists every flag in declaration order. Resolution order depends
// on it.
var Definitions = []Definition{
	{Key: "FEATURE_FIELD_REGIONAL_HEALTH_SERVICE", Flag: FieldRegionalHealthService},
	{Key: "GRAPHQL_MODULE_UPDATE", Flag: GraphQLModuleUpdate},
}

var flagsByBuildType = map[string][]Flag{
	Localhost:    {FieldRegionalHealthService, GraphQLModuleUpdate},
	VAGovDev:     {FieldRegionalHealthService, GraphQLModuleUpdate},
	VAGovStaging: {FieldRegionalHealthService},
	VAGovProd:    {FieldRegionalHealthService},
}

// BuildTypes returns the known build types.
func BuildTypes() []string {
	return []string{Localhost, VAGovDev, VAGovStaging, VAGovProd}
}

// Set records, for every declared flag, whether it is on.
type Set map[Flag]bool

// Enabled returns the flag state for buildtype. Every declared flag is
// present in the result.
func Enabled(buildtype string) (Set, error) {
	on, ok := flagsByBuildType[buildtype]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuildType, buildtype)
	}
	set := make(Set, len(Definitions))
	for _, d := range Definitions {
		set[d.Flag] = false
	}
	for _, f := range on {
		set[f] = true
	}
	return set, nil
}

// On reports whether f is enabled.
func (s Set) On(f Flag) bool { return s[f] }

// List returns the enabled flags in declaration order.
func (s Set) List() []Flag {
	var out []Flag
	for _, d := range Definitions {
		if s[d.Flag] {
			out = append(out, d.Flag)
		}
	}
	return out
}

// Resolver picks flag-specific variants of files: with a flag enabled,
// "fragments/facility.graphql" may be overridden by
// "fragments/facility.featureFieldRegionalHealthService.graphql".
type Resolver struct {
	FS    fs.FS
	Flags Set
}

// Resolve returns the variant of name to use. When several enabled flags have
// a variant the last declared one wins. only, when set, restricts resolution
// to that flag. name itself is returned when no variant exists.
func (r Resolver) Resolve(name string, only Flag) string {
	resolved := name
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for _, f := range r.Flags.List() {
		if only != "" && f != only {
			continue
		}
		candidate := base + "." + string(f) + ext
		if _, err := fs.Stat(r.FS, candidate); err == nil {
			resolved = candidate
		}
	}
	return resolved
}
