package managers

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrRecordNotFound is returned when a collection has no record with the requested id
var ErrRecordNotFound = errors.New("record not found")

type Record map[string]any

func (r Record) ID() string {
	return fmt.Sprint(r["id"])
}

// Page is one slice of a collection
type Page struct {
	Records    []Record
	Page       int
	PageSize   int
	TotalItems int
	HasMore    bool
}

// ResourceManager keeps sandbox records in memory, keyed by collection path
// such as "orders" or "orders/14/shipments".
type ResourceManager struct {
	mu          sync.RWMutex
	collections map[string][]Record
	nextID      int
}

func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		collections: map[string][]Record{},
		nextID:      1,
	}
}

// LoadFixtures seeds collections from a YAML file mapping collection paths to record lists
func (m *ResourceManager) LoadFixtures(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixtures: %w", err)
	}

	var fixtures map[string][]map[string]any
	if err := yaml.Unmarshal(content, &fixtures); err != nil {
		return fmt.Errorf("failed to parse fixtures: %w", err)
	}

	collections := make([]string, 0, len(fixtures))
	for collection := range fixtures {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	for _, collection := range collections {
		for _, record := range fixtures[collection] {
			m.Create(collection, record)
		}
	}

	return nil
}

// Create stores a copy of fields, assigning an id when fields has none
func (m *ResourceManager) Create(collection string, fields map[string]any) Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := Record{}
	for key, value := range fields {
		record[key] = value
	}

	if id, ok := record["id"]; ok {
		if numeric, err := strconv.Atoi(fmt.Sprint(id)); err == nil && numeric >= m.nextID {
			m.nextID = numeric + 1
		}
	} else {
		record["id"] = m.nextID
		m.nextID++
	}

	key := normalizeCollection(collection)
	m.collections[key] = append(m.collections[key], record)

	return cloneRecord(record)
}

func (m *ResourceManager) Get(collection, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	index := m.indexOf(collection, id)
	if index < 0 {
		return nil, ErrRecordNotFound
	}

	return cloneRecord(m.collections[normalizeCollection(collection)][index]), nil
}

// Update merges fields into an existing record. The id cannot change.
func (m *ResourceManager) Update(collection, id string, fields map[string]any) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := m.indexOf(collection, id)
	if index < 0 {
		return nil, ErrRecordNotFound
	}

	record := m.collections[normalizeCollection(collection)][index]
	for key, value := range fields {
		if key == "id" {
			continue
		}
		record[key] = value
	}

	return cloneRecord(record), nil
}

func (m *ResourceManager) Delete(collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := m.indexOf(collection, id)
	if index < 0 {
		return ErrRecordNotFound
	}

	key := normalizeCollection(collection)
	m.collections[key] = append(m.collections[key][:index], m.collections[key][index+1:]...)

	return nil
}

// List returns page (1-based) of a collection. An unknown collection is empty.
func (m *ResourceManager) List(collection string, page, pageSize int) Page {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	records := m.collections[normalizeCollection(collection)]

	start := (page - 1) * pageSize
	if start > len(records) {
		start = len(records)
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	result := make([]Record, 0, end-start)
	for _, record := range records[start:end] {
		result = append(result, cloneRecord(record))
	}

	return Page{
		Records:    result,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(records),
		HasMore:    end < len(records),
	}
}

func (m *ResourceManager) indexOf(collection, id string) int {
	for i, record := range m.collections[normalizeCollection(collection)] {
		if record.ID() == id {
			return i
		}
	}
	return -1
}

func normalizeCollection(collection string) string {
	return strings.Trim(collection, "/")
}

func cloneRecord(record Record) Record {
	clone := make(Record, len(record))
	for key, value := range record {
		clone[key] = value
	}
	return clone
}
