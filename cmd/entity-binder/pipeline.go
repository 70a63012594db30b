package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"entity-binder/internal/analyze"
	"entity-binder/internal/config"
	"entity-binder/internal/descriptor"
	"entity-binder/internal/diagnostic"
	"entity-binder/internal/index"
	"entity-binder/internal/metamodel"
	"entity-binder/internal/typeresolve"
)

// sources is the merged class index of every configured input.
type sources struct {
	idx      *index.Index
	resolver metamodel.TypeResolver
	diags    diagnostic.Diagnostics
}

// loadSources indexes the configured Go packages and descriptor files.
// Diagnostics gathered before a failure are kept in the returned sources.
func loadSources(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sources, error) {
	src := &sources{}

	var (
		parts      []*index.Index
		goResolver metamodel.TypeResolver
	)

	if len(cfg.Patterns) > 0 {
		a := analyze.NewAnalyzer(analyze.Options{Dir: cfg.Dir, Logger: log})

		idx, err := a.Load(ctx, cfg.Patterns...)
		if err != nil {
			return src, err
		}

		src.diags.Merge(a.Diagnostics())
		parts = append(parts, idx)
		goResolver = a.Resolver()
	}

	for _, path := range cfg.Descriptors {
		f, err := descriptor.LoadFile(path)
		if err != nil {
			return src, err
		}

		diags := descriptor.Validate(f)
		src.diags.Merge(*diags)

		if diags.HasErrors() {
			return src, fmt.Errorf("descriptor %s is invalid", path)
		}

		idx, err := descriptor.ToIndex(f)
		if err != nil {
			return src, err
		}

		log.Debug().Str("file", path).Int("classes", idx.Len()).Msg("loaded descriptor")

		parts = append(parts, idx)
	}

	merged, err := index.Merge(parts...)
	if err != nil {
		return src, err
	}

	src.idx = merged

	// go/types only knows the Go classes
	if len(cfg.Descriptors) == 0 {
		src.resolver = goResolver
	} else {
		src.resolver = typeresolve.NewIndexResolver(merged)
	}

	return src, nil
}

// build loads the sources and creates the entity hierarchies.
func build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*metamodel.Result, diagnostic.Diagnostics, error) {
	src, err := loadSources(ctx, cfg, log)
	if err != nil {
		return nil, src.diags, err
	}

	res, err := metamodel.NewBuilder(src.idx, src.resolver, cfg.Metamodel(log)).Build(ctx, src.idx)
	if err != nil {
		return nil, src.diags, err
	}

	diags := src.diags
	diags.Merge(res.Diagnostics)

	return res, diags, nil
}
