package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrNoFiles возвращается, когда не передано ни одного файла
	ErrNoFiles = errors.New("filestorage: no files")

	// ErrInvalidImage возвращается, когда файл не удалось декодировать как изображение
	ErrInvalidImage = errors.New("filestorage: invalid image")

	// ErrWrite возвращается при ошибке записи файла
	ErrWrite = errors.New("filestorage: write failed")
)

// Upload загружаемый файл
type Upload struct {
	Filename string
	Data     io.Reader
}

// Storage локальное хранилище изображений бронирований
// Изображения приводятся к JPEG и уменьшаются до maxWidth по ширине
type Storage struct {
	dir       string
	publicURL string
	maxWidth  int
}

// New создает хранилище и каталог для файлов
func New(dir, publicURL string, maxWidth int) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestorage: create dir %s: %w", dir, err)
	}
	return &Storage{dir: dir, publicURL: publicURL, maxWidth: maxWidth}, nil
}

// Dir каталог с файлами, отдается как статика
func (s *Storage) Dir() string {
	return s.dir
}

// Save сохраняет все файлы
// Если хотя бы один файл не сохранился, уже записанные удаляются
func (s *Storage) Save(ctx context.Context, files []Upload) ([]domain.Image, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	saved := make([]domain.Image, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			_ = s.Delete(context.Background(), saved)
			return nil, err
		}

		img, err := s.saveOne(f)
		if err != nil {
			_ = s.Delete(context.Background(), saved)
			return nil, err
		}
		saved = append(saved, img)
	}

	return saved, nil
}

func (s *Storage) saveOne(f Upload) (domain.Image, error) {
	src, err := imaging.Decode(f.Data, imaging.AutoOrientation(true))
	if err != nil {
		return domain.Image{}, fmt.Errorf("%w: %s: %v", ErrInvalidImage, f.Filename, err)
	}

	if s.maxWidth > 0 && src.Bounds().Dx() > s.maxWidth {
		src = imaging.Resize(src, s.maxWidth, 0, imaging.Lanczos)
	}

	key := uuid.NewString() + ".jpg"
	if err := imaging.Save(src, filepath.Join(s.dir, key), imaging.JPEGQuality(85)); err != nil {
		return domain.Image{}, fmt.Errorf("%w: %s: %v", ErrWrite, f.Filename, err)
	}

	return domain.Image{URL: path.Join(s.publicURL, key), Key: key}, nil
}

// Delete удаляет файлы по ключам, отсутствующие файлы пропускаются
func (s *Storage) Delete(_ context.Context, images []domain.Image) error {
	var errs []error
	for _, img := range images {
		// Ключ генерируется хранилищем, но защищаемся от путей вида ../
		name := filepath.Base(img.Key)
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
