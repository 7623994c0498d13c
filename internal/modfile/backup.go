package modfile

import (
	"fmt"
	"io"
	"os"
)

// BackupSuffix is appended to the original path for the safety copy.
const BackupSuffix = ".bak"

// Backup copies the module image at path to path+BackupSuffix and returns
// the backup path. An existing backup is overwritten.
func Backup(path string) (string, error) {
	backupPath := path + BackupSuffix
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return backupPath, nil
}

// Restore puts the backup back in place of the original. The backup file
// itself is kept; callers decide when to discard it.
func Restore(backupPath, path string) error {
	if err := copyFile(backupPath, path); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
