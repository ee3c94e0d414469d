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

package actor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phant-project/phant-go/pkg/instance"
)

var (
	// ErrInvalidHandle is returned for handles that are not of the form
	// "user", "user@host" or "@user@host".
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrInstanceMismatch is returned when a handle names one instance and
	// the explicit instance argument names another.
	ErrInstanceMismatch = errors.New("instance mismatch")
)

// ParseHandle splits a handle into username and instance.
//
// Accepted shapes, by number of "@"-separated segments: "user" (the
// instance comes from explicitInstance or defaultInstance), "user@host" and
// "@user@host". When both the handle and explicitInstance name an instance
// they must compare equal (scheme/host/port), otherwise ErrInstanceMismatch.
func ParseHandle(handle, explicitInstance, defaultInstance, defaultScheme string) (string, *instance.Instance, error) {
	parts := strings.Split(handle, "@")

	var username, instanceAddr string
	switch len(parts) {
	case 1:
		username = parts[0]
		instanceAddr = explicitInstance
		if instanceAddr == "" {
			instanceAddr = defaultInstance
		}
	case 2:
		username = parts[0]
		instanceAddr = parts[1]
	case 3:
		if parts[0] != "" {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
		}
		username = parts[1]
		instanceAddr = parts[2]
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	if username == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}

	inst, err := instance.ParseWithScheme(instanceAddr, defaultScheme)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}

	if explicitInstance != "" && instanceAddr != explicitInstance {
		explicit, err := instance.Parse(explicitInstance)
		if err != nil {
			return "", nil, err
		}
		if !inst.Equal(explicit) {
			return "", nil, fmt.Errorf("%w: handle names %s, argument names %s",
				ErrInstanceMismatch, inst, explicit)
		}
	}

	return username, inst, nil
}
