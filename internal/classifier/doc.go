// Package classifier maps files onto the configured category tree.
//
// Category resolution is a pure extension lookup with a Miscellaneous
// fallback. Subcategory resolution walks the category's subcategories in
// configured order and matches each against three tiers: extension sets,
// case-insensitive filename globs, and embedded image tags supplied by an
// optional metadata reader. Metadata failures never abort a classification;
// they simply leave that tier unmatched.
package classifier
