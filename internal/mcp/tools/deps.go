package tools

import (
	"strconv"

	"github.com/usestring/json2struct/internal/cache"
	"github.com/usestring/json2struct/internal/config"
	"github.com/usestring/json2struct/pkg/gostruct"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.DeclarationCache
}

// options merges per-call overrides onto the configured rendering defaults.
// Zero overrides keep the configured value.
func (d *Deps) options(tagKey string, indentWidth *int, gofmt *bool) *gostruct.Options {
	opts := gostruct.DefaultOptions()
	if d.Config != nil {
		opts.TagKey = d.Config.TagKey
		opts.IndentWidth = d.Config.IndentWidth
		opts.Gofmt = d.Config.Gofmt
	}
	if tagKey != "" {
		opts.TagKey = tagKey
	}
	if indentWidth != nil {
		opts.IndentWidth = *indentWidth
	}
	if gofmt != nil {
		opts.Gofmt = *gofmt
	}
	return opts
}

// cacheParts lists the option values that change rendered output.
func cacheParts(opts *gostruct.Options) []string {
	return []string{opts.TagKey, strconv.Itoa(opts.IndentWidth), strconv.FormatBool(opts.Gofmt)}
}
