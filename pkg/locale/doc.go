// Package locale indexes catalog trees by locale and resolves lookup keys
// against them.
//
// # Locale resolution
//
// A source belongs to a single locale when its locale is known up front:
//
//   - a standalone file whose base name is a BCP 47 tag ("en.json",
//     "ja-JP.yaml"), or matches the configured file locale pattern
//   - a custom block with a locale attribute (<i18n locale="en">)
//
// Any other source is keyed by locale at its first level:
//
//	{ "en": { "hello": "Hello" }, "ja": { "hello": "こんにちは" } }
//
// # Lookup keys
//
// Keys are dotted paths with optional bracket segments:
//
//	message.greeting
//	items[0].label
//	labels['with.dot']
//
// A key resolves when every segment matches a node; objects are valid
// targets. Empty and malformed keys are treated as resolved.
//
// # Usage Example
//
//	idx := locale.NewIndex(messages, locale.IndexOptions{Policy: locale.PolicyFirst})
//	if missing, ok := idx.FindMissingPath("message.greeting"); !ok {
//		fmt.Printf("'%s' does not exist in localization message resources\n", missing)
//	}
package locale
