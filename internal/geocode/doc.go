// Package geocode classifies PSGC codes and derives ancestor codes from
// their positional structure.
//
// A PSGC code is nine digits. Trailing zero groups mark the administrative
// level: "RR0000000" is a region, "RRPPP0000"-style codes with a zero
// middle group are provinces, codes ending in "000" are cities or
// municipalities, and anything else is a barangay. The rules are lexical;
// they do not consult the dataset.
package geocode
