package duel

import (
	"fmt"
	"sort"
)

// techniqueRegistry maps technique names to constructors. Add new
// techniques here. Populated in init because the constructors' hook
// closures resolve active techniques through the registry themselves; a
// composite-literal initializer would form an initialization cycle.
var techniqueRegistry map[string]func() *Technique

func init() {
	techniqueRegistry = map[string]func() *Technique{
		"Tsubame Gaeshi": NewTsubameGaeshi,
		"Mizu no Kokoro": NewMizuNoKokoro,
		"Kuzushi":        NewKuzushi,
		"Ai Uchi":        NewAiUchi,
		"Irimi":          NewIrimi,
		"Ma-ai":          NewMaai,
		"Mushin":         NewMushin,
		"Nagashi":        NewNagashi,
		"Kiai":           NewKiai,
		"Zanshin":        NewZanshin,
	}
}

// LookupTechnique builds a fresh instance of the named technique. Panics on
// an unknown name; callers should have validated names against the
// registry or a drafted hand first.
func LookupTechnique(name string) *Technique {
	ctor, ok := techniqueRegistry[name]
	if !ok {
		panic(fmt.Sprintf("unknown technique: %q", name))
	}
	return ctor()
}

// KnownTechnique reports whether name is registered.
func KnownTechnique(name string) bool {
	_, ok := techniqueRegistry[name]
	return ok
}

// TechniqueNames returns all registered names, sorted.
func TechniqueNames() []string {
	names := make([]string, 0, len(techniqueRegistry))
	for name := range techniqueRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPool returns the full ten-technique standard pool.
func DefaultPool() []string {
	return TechniqueNames()
}
