package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"anscli/internal/errors"
)

// tableExtensions lists the member formats worth extracting from a
// quarter archive.
var tableExtensions = map[string]struct{}{
	".csv":  {},
	".txt":  {},
	".xlsx": {},
}

// ExtractTables extracts the table members of a zip archive into
// destDir and returns their paths, sorted for deterministic processing
// order. Member names are flattened to their base name; archives carry
// flat data files, and this keeps the extraction inside destDir.
func ExtractTables(zipPath, destDir string) ([]string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open archive %s", zipPath), err)
	}
	defer zr.Close()

	var extracted []string
	for _, member := range zr.File {
		ext := strings.ToLower(filepath.Ext(member.Name))
		if _, ok := tableExtensions[ext]; !ok {
			continue
		}
		if member.FileInfo().IsDir() {
			continue
		}

		dest := filepath.Join(destDir, filepath.Base(member.Name))
		if err := extractMember(member, dest); err != nil {
			return nil, err
		}
		extracted = append(extracted, dest)
	}

	sort.Strings(extracted)
	return extracted, nil
}

func extractMember(member *zip.File, dest string) error {
	src, err := member.Open()
	if err != nil {
		return errors.NewParsingError(fmt.Sprintf("failed to open archive member %s", member.Name), err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to create %s", dest), err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to extract %s", member.Name), err)
	}
	return nil
}
