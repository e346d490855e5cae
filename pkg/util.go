package pkg

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
)

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if (isDir && stat.IsDir()) || (!isDir && !stat.IsDir()) {
		return true, nil
	}
	return false, nil
}

// CompressFiles writes a tar.gz archive of the given files into buf.
// Files that do not exist are skipped and not reported.
func CompressFiles(files []string, buf io.Writer) (archived []string, err error) {
	// tar > gzip > buf
	gzipWriter := gzip.NewWriter(buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, file := range files {
		exists, err := PathExists(file, false)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		if err := addToTar(tarWriter, file); err != nil {
			return nil, err
		}
		archived = append(archived, file)
	}

	// produce tar
	if err := tarWriter.Close(); err != nil {
		return nil, err
	}
	// produce gzip
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}

	return archived, nil
}

func addToTar(tarWriter *tar.Writer, file string) error {
	fi, err := os.Stat(file)
	if err != nil {
		return err
	}

	header, err := tar.FileInfoHeader(fi, file)
	if err != nil {
		return err
	}
	// only the base name, so the archive unpacks into a flat data dir
	header.Name = filepath.Base(file)

	if err := tarWriter.WriteHeader(header); err != nil {
		return err
	}

	data, err := os.Open(file)
	if err != nil {
		return err
	}
	defer data.Close()

	_, err = io.Copy(tarWriter, data)
	return err
}
