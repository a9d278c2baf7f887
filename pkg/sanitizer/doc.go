// Package sanitizer normalizes free-form input before validation and storage.
//
// All functions are idempotent: applying them twice yields the same result.
// Invalid input is never rejected here; the validators decide what to refuse.
//
// Normalization includes:
//   - Text: collapse whitespace, trim, strip HTML markup
//   - Size labels: trim, drop empties and duplicates, keep order
//   - Image URLs: trim, lowercase scheme and host, drop duplicates
package sanitizer
