package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// TempPrefix marks upload folders for projects that are not yet persisted.
// The cleanup job prunes stale ones.
const TempPrefix = "temp-"

// SlideKey builds the storage key for one slide image:
// projects/{projectId}/slide-{index}.{ext}. The extension comes from the
// uploaded filename, defaulting to jpg when absent.
func SlideKey(projectID string, index int, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("projects/%s/slide-%d.%s", projectID, index, ext)
}

// ProjectPrefix returns the key prefix holding a project's slides.
func ProjectPrefix(projectID string) string {
	return fmt.Sprintf("projects/%s/", projectID)
}

// TempProjectID mints a synthetic project id for uploads that happen before
// the project itself is persisted.
func TempProjectID() string {
	return TempPrefix + uuid.NewString()
}

// IsTempProjectID reports whether a project id is a pre-persist synthetic id.
func IsTempProjectID(projectID string) bool {
	return strings.HasPrefix(projectID, TempPrefix)
}
