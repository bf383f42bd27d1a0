package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	serr "github.com/IvanChernomyrdin/go-usuarios/internal/shared/errors"
)

// FileSlot хранит каждое значение в отдельном файле <dir>/<key>.json.
//
// Директория создаётся с правами 0700, файлы пишутся с правами 0600.
// Запись идёт через временный файл и rename, чтобы при падении процесса
// на диске не осталось наполовину записанного JSON.
type FileSlot struct {
	dir string
}

// NewFileSlot создаёт файловый слот в каталоге dir.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

// DefaultDir возвращает каталог по умолчанию для локальных данных.
//
// Путь формируется как:
//
//	$HOME/.usuarios
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".usuarios"), nil
}

// Path возвращает путь к файлу ключа.
func (s *FileSlot) Path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: bad slot key %q", serr.ErrInvalidInput, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get читает файл ключа. Если файла нет — ok=false.
func (s *FileSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// Set атомарно перезаписывает файл ключа.
func (s *FileSlot) Set(_ context.Context, key string, value []byte) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	// если rename не случился — убираем мусор
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Delete удаляет файл ключа. Отсутствие файла ошибкой не считается.
func (s *FileSlot) Delete(_ context.Context, key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
