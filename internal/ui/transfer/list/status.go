package list

import (
	"fmt"

	"shuttle/internal/domain"
)

// ResolveStatus derives the aggregate checkbox state for a panel.
// eligible must already be filtered by the caller; it is not re-filtered here.
func ResolveStatus(eligible []domain.Item, checked []string) domain.CheckStatus {
	if len(checked) == 0 {
		return domain.CheckNone
	}
	if len(eligible) == 0 {
		// Nothing to complete, and an empty selection is never complete
		return domain.CheckPart
	}

	set := make(map[string]struct{}, len(checked))
	for _, key := range checked {
		set[key] = struct{}{}
	}
	for _, item := range eligible {
		if _, ok := set[item.Key]; !ok {
			return domain.CheckPart
		}
	}
	return domain.CheckAll
}

// CountLabel formats the header count, e.g. "2/5 items" or "1 item"
func CountLabel(checked, total int, itemUnit, itemsUnit string) string {
	unit := itemUnit
	if total > 1 {
		unit = itemsUnit
	}
	if checked > 0 {
		return fmt.Sprintf("%d/%d %s", checked, total, unit)
	}
	return fmt.Sprintf("%d %s", total, unit)
}
