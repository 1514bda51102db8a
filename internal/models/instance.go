// Almanarr - Multi-Instance Media Release Calendar
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almanarr

package models

// Instance is one configured, network-addressable service deployment.
type Instance struct {
	ID      string      `json:"id"`
	Label   string      `json:"label"`
	Service ServiceType `json:"service"`
	Enabled bool        `json:"enabled"`
}

// InstanceOption is a {value,label} pair for populating filter controls.
type InstanceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// InstancesResponse is the API payload for the instance directory.
type InstancesResponse struct {
	Instances []Instance       `json:"instances"`
	Options   []InstanceOption `json:"options"`
}
