// Package hierarchy resolves the ancestry of a PSGC code and validates
// codes against the dataset.
//
// Ancestor codes are derived from the code itself (see package geocode);
// each classification outcome has a fixed walk plan. Plans declare per step
// whether a failed fetch aborts the walk or truncates it.
package hierarchy
