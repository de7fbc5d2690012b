package model

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/LionsAd/commerce/internal/field"
)

// ErrReadOnlyField 只读字段已有值时再次赋值
var ErrReadOnlyField = errors.New("只读字段不能修改")

// ProductVariationRecord 商品变体某个翻译的存储行（基础表与数据表的合并视图）
type ProductVariationRecord struct {
	ID              uint64 `db:"variation_id" json:"variation_id"`
	Type            string `db:"type" json:"type"`
	UUID            string `db:"uuid" json:"uuid"`
	Langcode        string `db:"langcode" json:"langcode"`
	DefaultLangcode bool   `db:"default_langcode" json:"default_langcode"`
	UID             uint64 `db:"uid" json:"uid"`
	SKU             string `db:"sku" json:"sku"`
	Status          bool   `db:"status" json:"status"`
	Created         int64  `db:"created" json:"created"`
	Changed         int64  `db:"changed" json:"changed"`
}

// ProductVariation 商品变体实体
type ProductVariation struct {
	rec   ProductVariationRecord
	owner *User
}

// NewProductVariation 创建指定类型和语言的新变体，并按字段声明填充默认值
func NewProductVariation(ctx context.Context, bundle, langcode string) *ProductVariation {
	v := &ProductVariation{rec: ProductVariationRecord{
		Type:            bundle,
		Langcode:        langcode,
		DefaultLangcode: true,
	}}
	for _, d := range ProductVariationFields().All() {
		if value := d.DefaultValue(ctx); value != nil {
			v.applyDefault(d.Name(), value)
		}
	}
	return v
}

func (v *ProductVariation) applyDefault(name string, value interface{}) {
	switch name {
	case "uid":
		if id, ok := value.(uint64); ok {
			v.rec.UID = id
		}
	case "uuid":
		if s, ok := value.(string); ok && v.rec.UUID == "" {
			v.rec.UUID = s
		}
	case "status":
		if b, ok := value.(bool); ok {
			v.rec.Status = b
		}
	case "created":
		if ts, ok := value.(int64); ok {
			v.rec.Created = ts
		}
	case "changed":
		if ts, ok := value.(int64); ok {
			v.rec.Changed = ts
		}
	}
}

// ProductVariationFromRecord 从存储行还原实体
func ProductVariationFromRecord(rec ProductVariationRecord) *ProductVariation {
	return &ProductVariation{rec: rec}
}

// Record 返回当前翻译的存储行
func (v *ProductVariation) Record() ProductVariationRecord {
	return v.rec
}

func (v *ProductVariation) ID() uint64 { return v.rec.ID }

// AssignID 保存后由存储层写入ID，已有ID时返回 ErrReadOnlyField
func (v *ProductVariation) AssignID(id uint64) error {
	if v.rec.ID != 0 && v.rec.ID != id {
		return ErrReadOnlyField
	}
	v.rec.ID = id
	return nil
}

func (v *ProductVariation) IsNew() bool { return v.rec.ID == 0 }

func (v *ProductVariation) UUID() string { return v.rec.UUID }

func (v *ProductVariation) Langcode() string { return v.rec.Langcode }

func (v *ProductVariation) IsDefaultTranslation() bool { return v.rec.DefaultLangcode }

// Type 变体类型（bundle）
func (v *ProductVariation) Type() string { return v.rec.Type }

// Label 实体标签即 SKU
func (v *ProductVariation) Label() string { return v.rec.SKU }

func (v *ProductVariation) SKU() string { return v.rec.SKU }

func (v *ProductVariation) SetSKU(sku string) *ProductVariation {
	v.rec.SKU = sku
	return v
}

// Status 是否启用，禁用的变体不能加入购物车
func (v *ProductVariation) Status() bool { return v.rec.Status }

func (v *ProductVariation) SetStatus(status bool) *ProductVariation {
	v.rec.Status = status
	return v
}

func (v *ProductVariation) CreatedTime() int64 { return v.rec.Created }

func (v *ProductVariation) SetCreatedTime(timestamp int64) *ProductVariation {
	v.rec.Created = timestamp
	return v
}

func (v *ProductVariation) ChangedTime() int64 { return v.rec.Changed }

func (v *ProductVariation) SetChangedTime(timestamp int64) *ProductVariation {
	v.rec.Changed = timestamp
	return v
}

// Touch 将 changed 更新为当前请求时间，每次保存前调用
func (v *ProductVariation) Touch(ctx context.Context) *ProductVariation {
	return v.SetChangedTime(field.RequestTime(ctx).Unix())
}

// Owner 已加载的所有者，未加载时为nil
func (v *ProductVariation) Owner() *User { return v.owner }

func (v *ProductVariation) SetOwner(u *User) *ProductVariation {
	v.owner = u
	if u != nil {
		v.rec.UID = u.ID
	} else {
		v.rec.UID = 0
	}
	return v
}

func (v *ProductVariation) OwnerID() uint64 { return v.rec.UID }

// SetOwnerID 修改所有者ID，与已加载的所有者不一致时丢弃该所有者
func (v *ProductVariation) SetOwnerID(uid uint64) *ProductVariation {
	v.rec.UID = uid
	if v.owner != nil && v.owner.ID != uid {
		v.owner = nil
	}
	return v
}

// Translation 基于当前翻译创建另一语言的翻译，不可翻译字段保持一致
func (v *ProductVariation) Translation(langcode string) *ProductVariation {
	rec := v.rec
	rec.Langcode = langcode
	rec.DefaultLangcode = false
	return &ProductVariation{rec: rec, owner: v.owner}
}

// OwnerView 对外公开的所有者信息，不包含邮箱等私有字段
type OwnerView struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type productVariationJSON struct {
	ProductVariationRecord
	Owner *OwnerView `json:"owner,omitempty"`
}

func (v *ProductVariation) MarshalJSON() ([]byte, error) {
	out := productVariationJSON{ProductVariationRecord: v.rec}
	if v.owner != nil {
		out.Owner = &OwnerView{ID: v.owner.ID, Username: v.owner.Username}
	}
	return json.Marshal(out)
}

// UnmarshalJSON 还原的所有者只包含公开字段
func (v *ProductVariation) UnmarshalJSON(data []byte) error {
	var decoded productVariationJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	v.rec = decoded.ProductVariationRecord
	v.owner = nil
	if decoded.Owner != nil {
		v.owner = &User{ID: decoded.Owner.ID, Username: decoded.Owner.Username}
	}
	return nil
}

// Values 按字段机器名返回当前翻译的字段值
func (v *ProductVariation) Values() map[string]interface{} {
	return map[string]interface{}{
		"variation_id": v.rec.ID,
		"uid":          v.rec.UID,
		"uuid":         v.rec.UUID,
		"langcode":     v.rec.Langcode,
		"sku":          v.rec.SKU,
		"type":         v.rec.Type,
		"status":       v.rec.Status,
		"created":      v.rec.Created,
		"changed":      v.rec.Changed,
	}
}
