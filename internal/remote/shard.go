package remote

import (
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// shardPattern matches "<stem>-00001-of-00015.<ext>".
var shardPattern = regexp.MustCompile(`^.+-(\d{5})-of-(\d{5})\.[^.]+$`)

// ShardCount reports the total shard count encoded in filename, if any.
func ShardCount(filename string) (int, bool) {
	m := shardPattern.FindStringSubmatch(path.Base(filename))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// shardDir returns the registry directory holding filename, "" for the repo root.
func shardDir(filename string) string {
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		return filename[:i]
	}
	return ""
}

// treeEntry is one element of the tree listing response.
type treeEntry struct {
	Path string `json:"path"`
	Size uint64 `json:"size"`
}

// selectShards keeps entries whose path ends in ext, sorted by path.
func selectShards(entries []treeEntry, ext string) []ArtifactFile {
	var files []ArtifactFile
	for _, e := range entries {
		if !strings.HasSuffix(e.Path, ext) {
			continue
		}
		files = append(files, ArtifactFile{Filename: e.Path, Size: e.Size})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})
	return files
}
