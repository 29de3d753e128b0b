package builder

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
)

type Builder struct {
	config  *Config
	shell   ShellRunner
	fs      FileSystem
	logger  Logger
	copier  FileCopier
	ldflags *LDFlagsBuilder
}

func NewBuilder(config *Config, shell ShellRunner, fs FileSystem, logger Logger, copier FileCopier) *Builder {
	return &Builder{
		config:  config,
		shell:   shell,
		fs:      fs,
		logger:  logger,
		copier:  copier,
		ldflags: NewLDFlagsBuilder(shell),
	}
}

func (b *Builder) EnsureBinDir() error {
	return b.fs.MkdirAll(b.config.BinDir, 0o750)
}

// Build compiles the csv-qsniffer binary into BinDir.
func (b *Builder) Build() error {
	if err := b.EnsureBinDir(); err != nil {
		return err
	}

	b.logger.Println("Building csv-qsniffer...")

	ldflags := b.ldflags.Build("main")
	args := []string{"build", "-trimpath", "-ldflags", ldflags, "-o", filepath.Join(b.config.BinDir, b.config.BinaryName), "./cmd/csv-qsniffer"}

	return b.shell.Run("go", args...)
}

func (b *Builder) InstallBinary(binaryName string) error {
	src := filepath.Join(b.config.BinDir, binaryName)
	dest := filepath.Join(b.config.GOPATHBin, binaryName)

	if _, err := b.fs.Stat(src); b.fs.IsNotExist(err) {
		return ErrSourceBinaryNotExist
	}

	if err := b.fs.MkdirAll(b.config.GOPATHBin, 0o750); err != nil {
		return err
	}

	return b.copyFile(src, dest)
}

// Install builds csv-qsniffer and copies it to GOPATHBin.
func (b *Builder) Install() error {
	if err := b.Build(); err != nil {
		return err
	}
	return b.InstallBinary(b.config.BinaryName)
}

// DevBuild builds a development version tagged "dev" and installs it.
func (b *Builder) DevBuild() error {
	if err := b.EnsureBinDir(); err != nil {
		return err
	}

	b.logger.Println("============================================================")
	b.logger.Println("=== Building Development Version ===")
	b.logger.Println("============================================================")
	b.logger.Println()

	ldflags := b.ldflags.BuildWithVersion("main", "dev")
	args := []string{"build", "-trimpath", "-ldflags", ldflags, "-o", filepath.Join(b.config.BinDir, b.config.BinaryName), "./cmd/csv-qsniffer"}

	if err := b.shell.Run("go", args...); err != nil {
		return err
	}

	if err := b.InstallBinary(b.config.BinaryName); err != nil {
		return err
	}

	b.logger.Printf("Installed development build of %s to %s\n", b.config.BinaryName, b.config.GOPATHBin)
	return nil
}

func (b *Builder) Clean() error {
	b.logger.Println("Cleaning build artifacts...")

	if err := b.fs.Remove(b.config.BinDir); err != nil && !b.fs.IsNotExist(err) {
		return err
	}

	b.logger.Println("Build artifacts cleaned")
	return nil
}

func (b *Builder) CleanAll() error {
	if err := b.Clean(); err != nil {
		return err
	}

	path := filepath.Join(b.config.GOPATHBin, b.config.BinaryName)
	if err := b.fs.Remove(path); err != nil && !b.fs.IsNotExist(err) {
		return err
	}

	b.logger.Println("All artifacts and the installed binary cleaned")
	return nil
}

func (b *Builder) copyFile(src, dst string) error {
	sourceFile, err := b.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sourceFile.Close(); closeErr != nil && b.logger != nil {
			b.logger.Printf("Error closing source file: %v", closeErr)
		}
	}()

	destFile, err := b.fs.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && b.logger != nil {
			b.logger.Printf("Error closing destination file: %v", closeErr)
		}
	}()

	if b.copier != nil {
		if _, err = b.copier.Copy(destFile, sourceFile); err != nil {
			return err
		}
	} else {
		if _, err = io.Copy(destFile, sourceFile); err != nil {
			return err
		}
	}

	var mode os.FileMode = 0o755
	if runtime.GOOS == "windows" {
		mode = 0o644
	}

	return b.fs.Chmod(dst, mode)
}
