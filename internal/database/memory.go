package repository

import (
	"MerchantBot/entity"
	"context"
	"sync"
	"time"
)

// Memory is a process-local store with the same surface as MongoDB, used when
// Mongo is disabled and in tests.
type Memory struct {
	mu       sync.Mutex
	users    map[int64]*entity.Merchant
	byName   map[string]int64
	counters map[string]int64
	info     string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[int64]*entity.Merchant),
		byName:   make(map[string]int64),
		counters: make(map[string]int64),
	}
}

func (m *Memory) UpsertUser(_ context.Context, userID int64, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		// The admin may have granted access to this username before the
		// user ever talked to the bot.
		if pending, known := m.byName[username]; known && pending < 0 {
			user = m.users[pending]
			delete(m.users, pending)
			user.UserID = userID
		} else {
			user = &entity.Merchant{UserID: userID}
		}
		m.users[userID] = user
	}
	user.Username = username
	user.LastSeen = time.Now()
	m.byName[username] = userID
	return nil
}

func (m *Memory) GetMerchantSettings(_ context.Context, userID int64) (*entity.MerchantSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok || !user.IsMerchant {
		return nil, nil
	}
	settings := user.Settings()
	return &settings, nil
}

func (m *Memory) GetMerchantByUsername(_ context.Context, username string) (*entity.Merchant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byName[username]
	if !ok {
		return nil, nil
	}
	user := *m.users[id]
	return &user, nil
}

func (m *Memory) IsMerchant(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	return ok && user.IsMerchant, nil
}

func (m *Memory) GrantMerchantAccess(_ context.Context, username, shopID, shopApiKey, orderIDTag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, known := m.byName[username]
	if !known {
		// Placeholder id until the user first talks to the bot.
		id = -int64(len(m.users) + 1)
		m.users[id] = &entity.Merchant{UserID: id}
		m.byName[username] = id
	}
	user := m.users[id]
	user.Username = username
	user.IsMerchant = true
	user.ShopID = shopID
	user.ShopApiKey = shopApiKey
	user.OrderIDTag = orderIDTag
	return nil
}

func (m *Memory) RevokeMerchantAccess(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[userID]; ok {
		user.IsMerchant = false
		user.ShopID = ""
		user.ShopApiKey = ""
		user.OrderIDTag = ""
	}
	return nil
}

func (m *Memory) DeleteMerchant(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byName[username]; ok {
		delete(m.users, id)
		delete(m.byName, username)
	}
	return nil
}

func (m *Memory) ListMerchants(_ context.Context) ([]entity.Merchant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var merchants []entity.Merchant
	for _, user := range m.users {
		if user.IsMerchant {
			merchants = append(merchants, *user)
		}
	}
	return merchants, nil
}

func (m *Memory) AllUserIDs(_ context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int64
	for id := range m.users {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// AllocateCounter atomically increments and returns the counter for a tag.
func (m *Memory) AllocateCounter(_ context.Context, tag string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[tag]++
	return m.counters[tag], nil
}

func (m *Memory) GetInfoContent(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info, nil
}

func (m *Memory) UpdateInfoContent(_ context.Context, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = content
	return nil
}
