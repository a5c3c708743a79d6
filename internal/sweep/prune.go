package sweep

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// pruneEmptyDirs removes directories under the source root that hold no
// entries, excluding the root itself. Directories are processed
// deepest-first so that emptying a child enables removal of its
// now-empty parent in the same pass. The removed set carries paths
// already deleted this run (or marked for deletion in dry-run mode), so
// the preview reports the same pruning a real run would perform.
func (s *Sweeper) pruneEmptyDirs(removed map[string]bool) (int, error) {
	var dirs []string
	err := filepath.WalkDir(s.srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != s.srcRoot {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// A child path is always longer than its parent, so length order
	// is depth order.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	var pruned int
	for _, dir := range dirs {
		empty, err := s.dirEmpty(dir, removed)
		if err != nil || !empty {
			continue
		}

		if s.dryRun {
			s.log.Info("would prune empty directory", "dir", dir)
			removed[dir] = true
			pruned++
			continue
		}

		if err := s.fs.Remove(dir); err != nil {
			s.log.Warn("could not prune directory", "dir", dir, "error", err)
			continue
		}
		s.log.Debug("pruned empty directory", "dir", dir)
		removed[dir] = true
		pruned++
	}

	return pruned, nil
}

// dirEmpty reports whether dir holds no entries besides those already
// in the removed set.
func (s *Sweeper) dirEmpty(dir string, removed map[string]bool) (bool, error) {
	names, err := s.fs.ReadDirNames(dir)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if !removed[filepath.Join(dir, name)] {
			return false, nil
		}
	}
	return true, nil
}
