package mcpsrv

import (
	"github.com/usestring/json2struct/internal/cache"
	"github.com/usestring/json2struct/internal/config"
	"github.com/usestring/json2struct/pkg/gostruct"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config *config.Config
	Cache  *cache.DeclarationCache
}

// Options returns the configured rendering options.
func (d *Deps) Options() *gostruct.Options {
	return &gostruct.Options{
		TagKey:      d.Config.TagKey,
		IndentWidth: d.Config.IndentWidth,
		Gofmt:       d.Config.Gofmt,
	}
}
