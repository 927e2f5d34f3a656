package companion

import "github.com/andastra/andastra/twoda"

// TwoDAToCSV and TwoDAFromCSV re-export twoda.Table's own CSV projection
// (twoda.ToCSV/FromCSV) so companion is the single import for every C10
// text projection; the 2DA package owns the conversion itself since its
// binary codec already needs the same deduplicated-cell model CSV does.
func TwoDAToCSV(t *twoda.Table) (string, error) { return twoda.ToCSV(t) }

func TwoDAFromCSV(text string) (*twoda.Table, error) { return twoda.FromCSV(text) }
