package jobs

import (
	"context"
	"log"
	"strings"
	"time"

	"studiodeck/internal/storage"
)

// TempUploadCleanupJob prunes staged slide images under projects/temp-* whose
// upload was never attached to a saved project (abandoned forms, closed tabs).
type TempUploadCleanupJob struct {
	blobs  *storage.BlobStore
	maxAge time.Duration
}

// NewTempUploadCleanupJob creates a new temp upload cleanup job.
// maxAge: staged uploads older than this are deleted (e.g., 24 hours)
func NewTempUploadCleanupJob(blobs *storage.BlobStore, maxAge time.Duration) *TempUploadCleanupJob {
	return &TempUploadCleanupJob{blobs: blobs, maxAge: maxAge}
}

// Run deletes expired staged uploads.
func (j *TempUploadCleanupJob) Run(ctx context.Context) error {
	if j.blobs == nil {
		log.Println("⚠️ [TEMP-CLEANUP] Skipped: blob storage not available")
		return nil
	}

	cutoff := time.Now().Add(-j.maxAge)

	objects, err := j.blobs.ListPrefix(ctx, "projects/"+storage.TempPrefix)
	if err != nil {
		log.Printf("❌ [TEMP-CLEANUP] Failed to list staged uploads: %v", err)
		return err
	}

	deleted := 0
	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}
		// Keys look like projects/temp-<uuid>/slide-0.jpg
		if !strings.HasPrefix(obj.Key, "projects/"+storage.TempPrefix) {
			continue
		}
		if err := j.blobs.Delete(ctx, obj.Key); err != nil {
			log.Printf("⚠️ [TEMP-CLEANUP] Failed to delete %s: %v", obj.Key, err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		log.Printf("🧹 [TEMP-CLEANUP] Deleted %d staged uploads (older than %s)",
			deleted, cutoff.Format(time.RFC3339))
	}

	return nil
}
