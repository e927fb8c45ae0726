package store

import (
	"context"
	"slices"
	"sync"

	"github.com/kpauljoseph/hashcards/internal/datetime"
	"github.com/kpauljoseph/hashcards/internal/hash"
	"github.com/kpauljoseph/hashcards/internal/performance"
)

type memoryRecord struct {
	perf    performance.Performance
	addedAt datetime.Timestamp
}

// Memory keeps records in process memory. It backs tests and dry runs.
type Memory struct {
	mu       sync.RWMutex
	records  map[hash.Hash]memoryRecord
	sessions []SessionLog
}

func NewMemory() *Memory {
	return &Memory{records: make(map[hash.Hash]memoryRecord)}
}

func (m *Memory) Get(_ context.Context, h hash.Hash) (performance.Performance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[h].perf, nil
}

func (m *Memory) Set(_ context.Context, h hash.Hash, p performance.Performance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[h]
	rec.perf = p
	m.records[h] = rec
	return nil
}

func (m *Memory) Insert(_ context.Context, h hash.Hash, addedAt datetime.Timestamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[h]; !ok {
		m.records[h] = memoryRecord{perf: performance.New, addedAt: addedAt}
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, h hash.Hash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, h)
	return nil
}

func (m *Memory) Hashes(_ context.Context) ([]hash.Hash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hashes := make([]hash.Hash, 0, len(m.records))
	for h := range m.records {
		hashes = append(hashes, h)
	}
	slices.SortFunc(hashes, hash.Hash.Compare)
	return hashes, nil
}

func (m *Memory) Due(_ context.Context, today datetime.Date) (HashSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	due := make(HashSet)
	for h, rec := range m.records {
		if rec.perf.IsDue(today) {
			due[h] = struct{}{}
		}
	}
	return due, nil
}

func (m *Memory) Export(_ context.Context) (Records, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make(Records, len(m.records))
	for h, rec := range m.records {
		records[h] = rec.perf
	}
	return records, nil
}

func (m *Memory) Import(_ context.Context, records Records) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for h, p := range records {
		rec := m.records[h]
		rec.perf = p
		m.records[h] = rec
	}
	return nil
}

func (m *Memory) SaveSession(_ context.Context, log SessionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, log)
	return nil
}

func (m *Memory) Sessions(_ context.Context) ([]SessionLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.sessions), nil
}

func (m *Memory) Close() error {
	return nil
}
