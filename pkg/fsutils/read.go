package fsutils

import (
	"io"
	"os"
)

// ReadFileData reads at most max bytes of a file. Zero or negative max
// reads the whole file.
func ReadFileData(filePath string, max int) (data []byte, err error) {
	if max <= 0 {
		return os.ReadFile(filePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	data = make([]byte, max)
	n, err := io.ReadFull(file, data)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return data[:n], err
}
