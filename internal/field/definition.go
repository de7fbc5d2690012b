// Package field 声明实体的基础字段：存储类型、标签、可翻译性、默认值、
// 显示选项和校验约束。存储层和校验层都只读取这里的声明。
package field

import (
	"context"
	"encoding/json"
)

// StorageType 字段存储类型
type StorageType string

const (
	TypeInteger         StorageType = "integer"
	TypeEntityReference StorageType = "entity_reference"
	TypeUUID            StorageType = "uuid"
	TypeLanguage        StorageType = "language"
	TypeString          StorageType = "string"
	TypeBoolean         StorageType = "boolean"
	TypeCreated         StorageType = "created"
	TypeChanged         StorageType = "changed"
)

// DefaultMaxLength string 字段未设置 max_length 时的长度上限
const DefaultMaxLength = 255

// LanguageMaxLength language 字段的列宽
const LanguageMaxLength = 12

// 显示模式
const (
	DisplayView = "view"
	DisplayForm = "form"
)

// DefaultValueCallback 在创建实体时计算字段默认值
type DefaultValueCallback func(ctx context.Context) interface{}

// DisplayOptions 字段在某个显示模式下的组件提示
type DisplayOptions struct {
	Label    string                 `json:"label,omitempty"`
	Type     string                 `json:"type"`
	Weight   int                    `json:"weight"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

// Definition 单个基础字段的定义。所有 Set 方法返回定义本身以便链式调用。
type Definition struct {
	name                 string
	storageType          StorageType
	label                string
	description          string
	readOnly             bool
	required             bool
	translatable         bool
	settings             map[string]interface{}
	defaultValue         interface{}
	defaultValueCallback DefaultValueCallback
	constraints          []string
	displayOptions       map[string]DisplayOptions
	displayConfigurable  map[string]bool
}

// Create 创建指定存储类型的字段定义
func Create(storageType StorageType) *Definition {
	d := &Definition{
		storageType:         storageType,
		settings:            map[string]interface{}{},
		displayOptions:      map[string]DisplayOptions{},
		displayConfigurable: map[string]bool{},
	}
	switch storageType {
	case TypeString:
		d.settings["max_length"] = DefaultMaxLength
	case TypeUUID:
		d.defaultValueCallback = newUUID
	case TypeCreated, TypeChanged:
		d.defaultValueCallback = requestTimestamp
	}
	return d
}

func (d *Definition) SetLabel(label string) *Definition {
	d.label = label
	return d
}

func (d *Definition) SetDescription(description string) *Definition {
	d.description = description
	return d
}

func (d *Definition) SetReadOnly(readOnly bool) *Definition {
	d.readOnly = readOnly
	return d
}

func (d *Definition) SetRequired(required bool) *Definition {
	d.required = required
	return d
}

func (d *Definition) SetTranslatable(translatable bool) *Definition {
	d.translatable = translatable
	return d
}

func (d *Definition) SetSetting(key string, value interface{}) *Definition {
	d.settings[key] = value
	return d
}

// SetSettings 合并设置项，已有的同名设置会被覆盖
func (d *Definition) SetSettings(settings map[string]interface{}) *Definition {
	for k, v := range settings {
		d.settings[k] = v
	}
	return d
}

func (d *Definition) SetDefaultValue(value interface{}) *Definition {
	d.defaultValue = value
	return d
}

// SetDefaultValueCallback 设置默认值回调，优先于静态默认值
func (d *Definition) SetDefaultValueCallback(cb DefaultValueCallback) *Definition {
	d.defaultValueCallback = cb
	return d
}

func (d *Definition) AddConstraint(name string) *Definition {
	d.constraints = append(d.constraints, name)
	return d
}

func (d *Definition) SetDisplayOptions(mode string, opts DisplayOptions) *Definition {
	d.displayOptions[mode] = opts
	return d
}

func (d *Definition) SetDisplayConfigurable(mode string, configurable bool) *Definition {
	d.displayConfigurable[mode] = configurable
	return d
}

func (d *Definition) Name() string                   { return d.name }
func (d *Definition) Type() StorageType              { return d.storageType }
func (d *Definition) Label() string                  { return d.label }
func (d *Definition) Description() string            { return d.description }
func (d *Definition) IsReadOnly() bool               { return d.readOnly }
func (d *Definition) IsRequired() bool               { return d.required }
func (d *Definition) IsTranslatable() bool           { return d.translatable }
func (d *Definition) Constraints() []string          { return append([]string(nil), d.constraints...) }
func (d *Definition) Setting(key string) interface{} { return d.settings[key] }
func (d *Definition) HasDefaultCallback() bool       { return d.defaultValueCallback != nil }

// DisplayOptions 返回指定显示模式的选项
func (d *Definition) DisplayOptions(mode string) (DisplayOptions, bool) {
	opts, ok := d.displayOptions[mode]
	return opts, ok
}

func (d *Definition) IsDisplayConfigurable(mode string) bool {
	return d.displayConfigurable[mode]
}

// MaxLength 返回 string 和 language 字段的长度上限，其他类型返回0
func (d *Definition) MaxLength() int {
	if v, ok := d.settings["max_length"].(int); ok {
		return v
	}
	if d.storageType == TypeLanguage {
		return LanguageMaxLength
	}
	return 0
}

// DefaultValue 计算默认值：回调优先，其次静态默认值，都没有时返回nil
func (d *Definition) DefaultValue(ctx context.Context) interface{} {
	if d.defaultValueCallback != nil {
		return d.defaultValueCallback(ctx)
	}
	return d.defaultValue
}

// MarshalJSON 输出字段声明，作为对外的模式契约
func (d *Definition) MarshalJSON() ([]byte, error) {
	type display struct {
		Options      *DisplayOptions `json:"options,omitempty"`
		Configurable bool            `json:"configurable"`
	}
	displays := map[string]display{}
	for _, mode := range []string{DisplayView, DisplayForm} {
		entry := display{Configurable: d.displayConfigurable[mode]}
		if opts, ok := d.displayOptions[mode]; ok {
			entry.Options = &opts
		}
		if entry.Options != nil || entry.Configurable {
			displays[mode] = entry
		}
	}

	return json.Marshal(struct {
		Name            string                 `json:"name"`
		Type            StorageType            `json:"type"`
		Label           string                 `json:"label"`
		Description     string                 `json:"description,omitempty"`
		ReadOnly        bool                   `json:"read_only"`
		Required        bool                   `json:"required"`
		Translatable    bool                   `json:"translatable"`
		Settings        map[string]interface{} `json:"settings,omitempty"`
		DefaultValue    interface{}            `json:"default_value,omitempty"`
		DefaultCallback bool                   `json:"has_default_callback"`
		Constraints     []string               `json:"constraints,omitempty"`
		Display         map[string]display     `json:"display,omitempty"`
	}{
		Name:            d.name,
		Type:            d.storageType,
		Label:           d.label,
		Description:     d.description,
		ReadOnly:        d.readOnly,
		Required:        d.required,
		Translatable:    d.translatable,
		Settings:        d.settings,
		DefaultValue:    d.defaultValue,
		DefaultCallback: d.defaultValueCallback != nil,
		Constraints:     d.constraints,
		Display:         displays,
	})
}

// Definitions 按声明顺序保存的一组基础字段
type Definitions struct {
	order  []string
	byName map[string]*Definition
}

// NewDefinitions 创建空的字段集合
func NewDefinitions() *Definitions {
	return &Definitions{byName: map[string]*Definition{}}
}

// Add 以机器名登记字段。重复登记同名字段会替换旧定义但保留原有顺序。
func (ds *Definitions) Add(name string, d *Definition) *Definitions {
	d.name = name
	if _, exists := ds.byName[name]; !exists {
		ds.order = append(ds.order, name)
	}
	ds.byName[name] = d
	return ds
}

func (ds *Definitions) Get(name string) (*Definition, bool) {
	d, ok := ds.byName[name]
	return d, ok
}

func (ds *Definitions) Names() []string {
	return append([]string(nil), ds.order...)
}

func (ds *Definitions) All() []*Definition {
	all := make([]*Definition, 0, len(ds.order))
	for _, name := range ds.order {
		all = append(all, ds.byName[name])
	}
	return all
}

func (ds *Definitions) Translatable() []*Definition {
	var out []*Definition
	for _, d := range ds.All() {
		if d.translatable {
			out = append(out, d)
		}
	}
	return out
}

func (ds *Definitions) NonTranslatable() []*Definition {
	var out []*Definition
	for _, d := range ds.All() {
		if !d.translatable {
			out = append(out, d)
		}
	}
	return out
}

func (ds *Definitions) MarshalJSON() ([]byte, error) {
	return json.Marshal(ds.All())
}
