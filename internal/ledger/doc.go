// Package ledger tracks the clips an operator has excluded from downstream use.
//
// A Ledger holds two path sets, excluded videos and excluded skeleton files,
// that are always read out in sorted order. Each action class persists its
// ledger as a pair of newline delimited files in the ledger directory:
//
//	A022_exception_avi_list.txt
//	A022_exception_skeleton_list.txt
//
// Store.Load treats missing files as an empty ledger. Store.Save overwrites
// both files atomically, and Store.SaveMerged unions the ledger with whatever
// is already on disk before writing, so repeated review runs accumulate
// exceptions instead of replacing them. Both hold an exclusive file lock per
// action class for the duration of the write.
package ledger
