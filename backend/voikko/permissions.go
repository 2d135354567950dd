// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package voikko

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joppuyo/relevanssi-finnish-base-forms/core"
)

// executableMode is rwxr-xr-x.
const executableMode fs.FileMode = 0o755

// EnsurePermissions makes sure the file at path has mode 0755, changing it
// when it differs. Concurrent callers race harmlessly since the target
// mode is fixed.
func EnsurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrPermissionRepairFailure, err)
	}
	if info.Mode().Perm() == executableMode {
		return nil
	}
	if err := os.Chmod(path, executableMode); err != nil {
		return fmt.Errorf("%w: %w", core.ErrPermissionRepairFailure, err)
	}
	return nil
}
