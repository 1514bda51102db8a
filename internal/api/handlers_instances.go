// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/almanarr/internal/calendar"
	"github.com/tomtom215/almanarr/internal/models"
)

// Instances handles GET /api/v1/instances.
//
// The response lists every configured instance (including disabled ones, so
// clients can surface them greyed out) plus ready-made filter options: an
// "all" entry followed by one option per enabled instance.
func (h *Handler) Instances(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	instances := h.manager.Instances()

	options := make([]models.InstanceOption, 0, len(instances)+1)
	options = append(options, models.InstanceOption{Value: calendar.FilterAll, Label: "All Instances"})
	for _, inst := range instances {
		if !inst.Enabled {
			continue
		}
		options = append(options, models.InstanceOption{Value: inst.ID, Label: inst.Label})
	}

	respondSuccess(w, http.StatusOK, models.InstancesResponse{
		Instances: instances,
		Options:   options,
	}, time.Since(started), false)
}
