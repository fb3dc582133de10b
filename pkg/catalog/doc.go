// Package catalog provides the format-agnostic tree representation of a
// localization message document.
//
// # Overview
//
// A Tree is built once per source (a locale file or an embedded <i18n>
// block) by a format walker driving a Builder. Every MessageNode carries its
// Key (a property name or a list index), the source Span of that key and its
// children in document order.
//
// # Validation while building
//
// The Builder validates keys as they are entered, so every key is checked
// exactly once:
//
//   - string keys inside a locale root are checked against the configured
//     casing.CaseOption
//   - list elements are reported unless Options.AllowArray is set
//   - entries without a usable key are reported through InvalidKey
//
// The root level is never validated. When the source's locale is not known
// up front, first-level keys are taken as locale codes and validation starts
// one level below them.
//
// # Consumed key guard
//
// Walkers may visit the same source region through more than one structural
// path (for example the content of a YAML complex key). The Builder records
// the span of every consumed key and refuses to enter a node that starts
// inside one of them.
//
// # Usage Example
//
//	b := catalog.NewBuilder("locales/en.json", catalog.FormatJSON, catalog.Options{
//		CaseOption: casing.CamelCase,
//		InLocale:   true,
//		CheckKeys:  true,
//	})
//	if err := walker.WalkJSON(src, b); err != nil {
//		return err
//	}
//	tree, findings := b.Finish()
package catalog
