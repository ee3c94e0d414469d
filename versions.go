// Copyright (C) 2025 Phant Project
//
// This file is part of phant-go.
//
// phant-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// phant-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with phant-go.  If not, see <https://www.gnu.org/licenses/>.

// Package phant provides version information for phant-go.
package phant

const (
	// Version is the current version of phant-go
	Version = "0.1.0"

	// SoftwareName is the node software name advertised over nodeinfo
	SoftwareName = "phant"

	// NodeInfoSchemaVersion is the nodeinfo schema version this node serves
	NodeInfoSchemaVersion = "2.0"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	PhantVersion          string
	SoftwareName          string
	NodeInfoSchemaVersion string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		PhantVersion:          Version,
		SoftwareName:          SoftwareName,
		NodeInfoSchemaVersion: NodeInfoSchemaVersion,
	}
}
