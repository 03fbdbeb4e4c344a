// Package dataset discovers NTU-style clips on disk and selects the working
// list for a review session.
//
// An action class directory (<root>/<category>/<A###>/) holds videos such as
// S001C002P003R002A022_rgb.avi next to skeleton files such as
// S001C002P003R002A022.skeleton. Discovery lists both kinds sorted by path and
// pairs them by position; Select narrows the pairs by review mode against an
// exception ledger.
package dataset
