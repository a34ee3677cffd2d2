// Package scenes holds the demo scenes selectable from the command line.
package scenes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-shapes/engine/scene"
)

var registry = map[string]func() scene.Scene{
	DVDName:  func() scene.Scene { return NewDVD() },
	LifeName: func() scene.Scene { return NewGameOfLife() },
}

// Names lists the selectable scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the scene registered under name with its default settings.
//
// Parameters:
//   - name: the scene name, e.g. "dvd"
//
// Returns:
//   - scene.Scene: the scene
//   - error: an error listing the valid names if name is unknown
func New(name string) (scene.Scene, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}
