// Package history хранит журнал диктовок в формате JSONL рядом с бинарником.
package history

import (
	"bufio"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golos/internal/dictation"
)

// maxTailEntries ограничивает выдачу Tail независимо от запрошенного n.
const maxTailEntries = 100

// Store пишет записи истории в файл, по одной JSON-строке на запись.
// Запись fire-and-forget: ошибка файла логируется и не прерывает цикл
// диктовки.
type Store struct {
	mu   sync.Mutex
	path string
}

// New создаёт хранилище с файлом history.jsonl рядом с бинарником.
// Если путь к бинарнику определить не удалось, хранилище работает
// вхолостую.
func New() *Store {
	s := &Store{}

	execPath, err := os.Executable()
	if err == nil {
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			s.path = filepath.Join(filepath.Dir(execPath), "history.jsonl")
		}
	}

	return s
}

// NewAt создаёт хранилище с явным путём к файлу.
func NewAt(path string) *Store {
	return &Store{path: path}
}

// Record дописывает запись в конец файла.
func (s *Store) Record(entry dictation.HistoryEntry) {
	if s.path == "" {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Ошибка сериализации записи истории: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Ошибка открытия файла истории: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("Ошибка записи истории: %v", err)
	}
}

// Tail возвращает до n последних записей в хронологическом порядке.
// Повреждённые строки пропускаются.
func (s *Store) Tail(n int) []dictation.HistoryEntry {
	if s.path == "" || n <= 0 {
		return nil
	}
	if n > maxTailEntries {
		n = maxTailEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []dictation.HistoryEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry dictation.HistoryEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries
}

// Clear удаляет файл истории.
func (s *Store) Clear() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
