package gen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNotGenerated is returned when the target file exists and was not
// written by a generator.
var ErrNotGenerated = errors.New("refusing to overwrite a file without a generated code header")

// generatedRx is the standard marker of generated Go files.
var generatedRx = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Existing files are only
// replaced when they are generated themselves.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := checkReplaceable(outputPath); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		if err := writeAtomic(outputPath, file.Content); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

func checkReplaceable(path string) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	if !IsGenerated(content) {
		return ErrNotGenerated
	}

	return nil
}

// IsGenerated reports whether Go source carries a generated code comment
// before its package clause.
func IsGenerated(src []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if generatedRx.MatchString(line) {
			return true
		}

		if strings.HasPrefix(line, "package ") {
			return false
		}
	}

	return false
}

// writeAtomic replaces path by renaming a temporary file in the same
// directory over it.
func writeAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// writeDebugUnformatted writes code that failed formatting next to the
// intended output. The leading underscore keeps the go tool from building it.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	debugName := "_" + strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
