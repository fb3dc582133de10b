// Package loader finds localization catalogs on disk and builds the locale
// index a lint run works against.
//
// Catalog files are selected with glob patterns relative to the project
// root. Catalogs and component files are parsed concurrently; the index is
// then assembled in discovery order, catalogs first, so that when two
// sources define the same entry the result does not depend on scheduling.
//
// Parsed sources can be kept in a Cache across runs of a watch session.
// Files that fail to read or parse are returned as FileErrors and left out
// of the index.
//
//	l, err := loader.New(loader.Options{
//		Root:       ".",
//		LocaleDir:  []string{"locales/*.{json,yaml,yml}"},
//		ByFileName: true,
//		Catalog:    catalog.Options{CaseOption: casing.CamelCase, CheckKeys: true},
//	}, log)
//	catalogs, _ := l.DiscoverCatalogs(ctx)
//	sources, _ := l.DiscoverSources(ctx, []string{"src"})
//	res, err := l.Load(ctx, catalogs, sources)
package loader
