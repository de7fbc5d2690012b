package service

import (
	"context"
	"sort"
	"sync"

	"github.com/alicebob/miniredis/v2"
	qt "github.com/frankban/quicktest"
	"github.com/redis/go-redis/v9"

	"github.com/LionsAd/commerce/internal/model"
	"github.com/LionsAd/commerce/internal/repository"
)

// fakeVariationRepo 内存中的商品变体存储
type fakeVariationRepo struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]map[string]model.ProductVariationRecord
	loads  int
}

func newFakeVariationRepo() *fakeVariationRepo {
	return &fakeVariationRepo{rows: map[uint64]map[string]model.ProductVariationRecord{}}
}

func (r *fakeVariationRepo) Create(_ context.Context, v *model.ProductVariation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec := v.Record()
	rec.ID = r.nextID
	rec.DefaultLangcode = true
	r.rows[rec.ID] = map[string]model.ProductVariationRecord{rec.Langcode: rec}
	return v.AssignID(rec.ID)
}

func (r *fakeVariationRepo) Load(_ context.Context, id uint64, langcode string) (*model.ProductVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	for lc, rec := range r.rows[id] {
		if (langcode == "" && rec.DefaultLangcode) || lc == langcode {
			return model.ProductVariationFromRecord(rec), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeVariationRepo) LoadByUUID(_ context.Context, uuid string) (*model.ProductVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, translations := range r.rows {
		for _, rec := range translations {
			if rec.UUID == uuid && rec.DefaultLangcode {
				return model.ProductVariationFromRecord(rec), nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeVariationRepo) LoadBySKU(_ context.Context, sku string) (*model.ProductVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, translations := range r.rows {
		for _, rec := range translations {
			if rec.SKU == sku {
				return model.ProductVariationFromRecord(rec), nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeVariationRepo) SKUExists(_ context.Context, sku string, excludeID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, translations := range r.rows {
		if id == excludeID {
			continue
		}
		for _, rec := range translations {
			if rec.SKU == sku {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeVariationRepo) Save(ctx context.Context, v *model.ProductVariation) error {
	if v.IsNew() {
		return r.Create(ctx, v)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := v.Record()
	if _, ok := r.rows[rec.ID][rec.Langcode]; !ok {
		return repository.ErrNotFound
	}
	r.rows[rec.ID][rec.Langcode] = rec
	return nil
}

func (r *fakeVariationRepo) AddTranslation(_ context.Context, v *model.ProductVariation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := v.Record()
	translations, ok := r.rows[rec.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := translations[rec.Langcode]; ok {
		return repository.ErrTranslationExists
	}
	rec.DefaultLangcode = false
	translations[rec.Langcode] = rec
	return nil
}

func (r *fakeVariationRepo) DeleteTranslation(_ context.Context, id uint64, langcode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rows[id][langcode]
	if !ok {
		return repository.ErrTranslationNotFound
	}
	if rec.DefaultLangcode {
		return repository.ErrDefaultTranslation
	}
	delete(r.rows[id], langcode)
	return nil
}

func (r *fakeVariationRepo) Languages(_ context.Context, id uint64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	translations, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	var langcodes []string
	for lc, rec := range translations {
		if rec.DefaultLangcode {
			langcodes = append([]string{lc}, langcodes...)
			continue
		}
		langcodes = append(langcodes, lc)
	}
	sort.Strings(langcodes[1:])
	return langcodes, nil
}

func (r *fakeVariationRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeVariationRepo) List(_ context.Context, filter repository.ProductVariationFilter) ([]*model.ProductVariation, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint64
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var items []*model.ProductVariation
	for _, id := range ids {
		for lc, rec := range r.rows[id] {
			if filter.Langcode == "" && !rec.DefaultLangcode || filter.Langcode != "" && lc != filter.Langcode {
				continue
			}
			if filter.Type != "" && rec.Type != filter.Type {
				continue
			}
			if filter.Status != nil && rec.Status != *filter.Status {
				continue
			}
			items = append(items, model.ProductVariationFromRecord(rec))
		}
	}
	return items, len(items), nil
}

// fakeUserRepo 内存中的用户存储
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uint64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint64]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByToken(_ context.Context, token string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if token != "" && u.Token == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateToken(_ context.Context, id uint64, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Token = token
	return nil
}

func newTestRedis(c *qt.C) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(c.TB)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c.Cleanup(func() { client.Close() })
	return mr, client
}
