package pattern

import (
	"path/filepath"
	"strings"
)

// DestinationFor maps a source file to its artifact path: the source
// root prefix (including its leading separator) is stripped and the
// remainder is re-rooted under dstRoot with the compressed extension
// appended.
func DestinationFor(srcRoot, dstRoot, srcPath string) string {
	rel := strings.TrimPrefix(srcPath, srcRoot)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	return filepath.Join(dstRoot, rel) + CompressedExt
}
