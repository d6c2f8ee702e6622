package models

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Progress информация о прогрессе загрузки.
type Progress struct {
	ModelID    string
	Downloaded int64
	Total      int64
	Done       bool
	Error      error
}

// Manager управляет локальным хранилищем моделей: пути, проверка
// наличия, скачивание с прогрессом, удаление.
type Manager struct {
	modelsDir string
	mu        sync.RWMutex
}

// NewManager создаёт менеджер моделей.
// Модели хранятся в директории models/ рядом с бинарником.
func NewManager() (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось разрешить симлинки: %w", err)
	}

	return NewManagerAt(filepath.Join(filepath.Dir(execPath), "models"))
}

// NewManagerAt создаёт менеджер с явной директорией моделей.
func NewManagerAt(modelsDir string) (*Manager, error) {
	for _, engine := range []Engine{EngineWhisper, EngineVosk, EngineLLM} {
		dir := filepath.Join(modelsDir, string(engine))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", engine, err)
		}
	}
	return &Manager{modelsDir: modelsDir}, nil
}

// ModelsDir возвращает путь к директории моделей.
func (m *Manager) ModelsDir() string {
	return m.modelsDir
}

// GetModelPath возвращает полный путь к модели.
func (m *Manager) GetModelPath(info ModelInfo) string {
	switch info.Engine {
	case EngineWhisper, EngineVosk, EngineLLM:
		return filepath.Join(m.modelsDir, string(info.Engine), info.Filename)
	default:
		return filepath.Join(m.modelsDir, info.Filename)
	}
}

// IsDownloaded проверяет, скачана ли модель.
func (m *Manager) IsDownloaded(info ModelInfo) bool {
	stat, err := os.Stat(m.GetModelPath(info))
	if err != nil {
		return false
	}

	// Распакованная модель - директория, остальные - непустой файл
	if info.IsZip {
		return stat.IsDir()
	}
	return stat.Size() > 0
}

// ListDownloaded возвращает список скачанных моделей.
func (m *Manager) ListDownloaded() []ModelInfo {
	var downloaded []ModelInfo
	for _, model := range Registry {
		if m.IsDownloaded(model) {
			downloaded = append(downloaded, model)
		}
	}
	return downloaded
}

// Download скачивает модель.
// progress канал получает обновления о прогрессе (можно nil).
func (m *Manager) Download(ctx context.Context, info ModelInfo, progress chan<- Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsDownloaded(info) {
		reportDone(progress, info)
		return nil
	}

	if info.IsZip {
		return m.downloadAndUnzip(ctx, info, progress)
	}
	return m.downloadFile(ctx, info, progress)
}

func (m *Manager) downloadFile(ctx context.Context, info ModelInfo, progress chan<- Progress) error {
	destPath := m.GetModelPath(info)

	tmpPath := destPath + ".tmp"
	defer os.Remove(tmpPath)

	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if err := m.fetch(ctx, info, file, progress); err != nil {
		file.Close()
		return err
	}
	file.Close()

	// Переименовываем в финальное имя только после полной загрузки
	if err := os.Rename(tmpPath, destPath); err != nil {
		return err
	}

	reportDone(progress, info)
	return nil
}

func (m *Manager) downloadAndUnzip(ctx context.Context, info ModelInfo, progress chan<- Progress) error {
	tmpZip, err := os.CreateTemp("", "model-*.zip")
	if err != nil {
		return err
	}
	tmpPath := tmpZip.Name()
	defer os.Remove(tmpPath)

	if err := m.fetch(ctx, info, tmpZip, progress); err != nil {
		tmpZip.Close()
		return err
	}
	tmpZip.Close()

	// Архив содержит директорию с именем info.Filename
	parentDir := filepath.Dir(m.GetModelPath(info))
	if err := unzip(tmpPath, parentDir); err != nil {
		return fmt.Errorf("ошибка распаковки: %w", err)
	}

	reportDone(progress, info)
	return nil
}

// fetch скачивает info.URL в dst, отправляя прогресс без блокировки.
func (m *Manager) fetch(ctx context.Context, info ModelInfo, dst io.Writer, progress chan<- Progress) error {
	req, err := http.NewRequestWithContext(ctx, "GET", info.URL, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка скачивания: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = info.Size
	}

	var downloaded int64
	buf := make([]byte, 32*1024)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
			downloaded += int64(n)

			if progress != nil {
				select {
				case progress <- Progress{ModelID: info.ID, Downloaded: downloaded, Total: total}:
				default:
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func reportDone(progress chan<- Progress, info ModelInfo) {
	if progress != nil {
		progress <- Progress{ModelID: info.ID, Downloaded: info.Size, Total: info.Size, Done: true}
	}
}

func unzip(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(destDir, f.Name)

		// Защита от путей вида ../
		if !strings.HasPrefix(fpath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("недопустимый путь в архиве: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			os.MkdirAll(fpath, 0755)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}

		outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}

		rc, err := f.Open()
		if err != nil {
			outFile.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// Delete удаляет модель.
func (m *Manager) Delete(info ModelInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return os.RemoveAll(m.GetModelPath(info))
}
