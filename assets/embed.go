package assets

import (
	"embed"
	"io"
)

//go:embed samples.yaml
var FS embed.FS

func readAll(name string) ([]byte, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// SamplesYAML returns the embedded sample game sheets.
func SamplesYAML() ([]byte, error) {
	return readAll("samples.yaml")
}
