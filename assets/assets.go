// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the application's embedded resources.
*/
package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

// ResourcesDir is the directory of the embedded sample catalogues.
const ResourcesDir = "resources"

// FS provides access to the embedded file system.
var FS embed.FS

// Resources returns the embedded resource tree rooted at ResourcesDir.
func Resources() (fs.FS, error) {
	sub, err := fs.Sub(FS, ResourcesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded resources: %w", err)
	}

	return sub, nil
}
