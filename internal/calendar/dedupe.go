// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package calendar

import (
	"github.com/tomtom215/almanarr/internal/models"
)

// Deduplicate merges raw items sharing a ContentKey into canonical items
// annotated with every contributing instance.
//
// For each input item in order: the first item seen for a key supplies the
// canonical field values; later items for the same key only append their
// (instanceId, instanceName) to AllInstances. Contributions are not filtered
// by instance ID: the same instance reporting one content item twice counts
// as two contributions, which is acceptable because a single instance's feed
// should not repeat a content key.
//
// Output order is first-seen key insertion order, not chronological order;
// sorting happens during bucketing. Output length is always <= input length
// and every input item is represented in exactly one output item's
// provenance.
func Deduplicate(items []models.RawCalendarItem) []models.DeduplicatedCalendarItem {
	byKey := make(map[ContentKey]int, len(items))
	out := make([]models.DeduplicatedCalendarItem, 0, len(items))

	for _, item := range items {
		ref := models.InstanceRef{InstanceID: item.InstanceID, InstanceName: item.InstanceName}
		key := ResolveKey(item)
		if idx, ok := byKey[key]; ok {
			out[idx].AllInstances = append(out[idx].AllInstances, ref)
			continue
		}
		byKey[key] = len(out)
		out = append(out, models.DeduplicatedCalendarItem{
			RawCalendarItem: item,
			AllInstances:    []models.InstanceRef{ref},
		})
	}
	return out
}
