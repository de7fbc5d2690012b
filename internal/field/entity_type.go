package field

import (
	"fmt"
	"strings"
)

// DefaultLangcodeColumn 数据表中标记默认翻译的列
const DefaultLangcodeColumn = "default_langcode"

// EntityKeys 实体键到字段机器名的映射
type EntityKeys struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Langcode string `json:"langcode"`
	UUID     string `json:"uuid"`
	Bundle   string `json:"bundle"`
}

// EntityType 实体类型声明
type EntityType struct {
	ID               string     `json:"id"`
	Label            string     `json:"label"`
	AdminPermission  string     `json:"admin_permission"`
	Fieldable        bool       `json:"fieldable"`
	Translatable     bool       `json:"translatable"`
	BaseTable        string     `json:"base_table"`
	DataTable        string     `json:"data_table,omitempty"`
	Keys             EntityKeys `json:"entity_keys"`
	BundleEntityType string     `json:"bundle_entity_type,omitempty"`
}

// Column 表中的一列
type Column struct {
	Name          string
	SQLType       string
	NotNull       bool
	AutoIncrement bool
}

// Index 普通索引或唯一索引
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Table 由字段定义推导出的存储表
type Table struct {
	Name       string
	Columns    []Column
	PrimaryKey []string
	Indexes    []Index
}

// ColumnNames 按顺序返回列名
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

func (et EntityType) isKey(name string) bool {
	k := et.Keys
	return name == k.ID || name == k.UUID || name == k.Langcode || name == k.Bundle
}

// Tables 推导实体的存储表。可翻译实体拆分为基础表和数据表：基础表保存
// id、uuid、bundle、langcode 以及不可翻译字段；数据表按 (id, langcode)
// 保存每个翻译的可翻译字段。
func (et EntityType) Tables(defs *Definitions) []Table {
	if !et.Translatable || et.DataTable == "" {
		base := Table{Name: et.BaseTable, PrimaryKey: []string{et.Keys.ID}}
		for _, d := range defs.All() {
			base.Columns = append(base.Columns, et.column(d, true))
		}
		et.addIndexes(&base, defs, true)
		return []Table{base}
	}

	base := Table{Name: et.BaseTable, PrimaryKey: []string{et.Keys.ID}}
	data := Table{Name: et.DataTable, PrimaryKey: []string{et.Keys.ID, et.Keys.Langcode}}
	for _, d := range defs.All() {
		key := et.isKey(d.name)
		if key || !d.translatable {
			// uuid 只存在于基础表
			base.Columns = append(base.Columns, et.column(d, true))
		}
		if (key && d.name != et.Keys.UUID) || d.translatable {
			data.Columns = append(data.Columns, et.column(d, false))
		}
	}
	data.Columns = append(data.Columns, Column{Name: DefaultLangcodeColumn, SQLType: "TINYINT", NotNull: true})

	et.addIndexes(&base, defs, true)
	et.addIndexes(&data, defs, false)
	data.Indexes = append(data.Indexes, Index{
		Name:    fmt.Sprintf("%s__%s__%s__%s", et.DataTable, et.Keys.ID, DefaultLangcodeColumn, et.Keys.Langcode),
		Columns: []string{et.Keys.ID, DefaultLangcodeColumn, et.Keys.Langcode},
	})
	return []Table{base, data}
}

func (et EntityType) addIndexes(t *Table, defs *Definitions, base bool) {
	if base && et.Keys.UUID != "" {
		if _, ok := defs.Get(et.Keys.UUID); ok {
			t.Indexes = append(t.Indexes, Index{
				Name:    fmt.Sprintf("%s_field__%s__value", t.Name, et.Keys.UUID),
				Columns: []string{et.Keys.UUID},
				Unique:  true,
			})
		}
	}
	for _, c := range t.Columns {
		d, ok := defs.Get(c.Name)
		if !ok || d.storageType != TypeEntityReference {
			continue
		}
		t.Indexes = append(t.Indexes, Index{
			Name:    fmt.Sprintf("%s__%s", t.Name, c.Name),
			Columns: []string{c.Name},
		})
	}
}

func (et EntityType) column(d *Definition, base bool) Column {
	c := Column{Name: d.name, NotNull: et.isKey(d.name)}
	switch d.storageType {
	case TypeInteger:
		c.SQLType = "INT"
		if d.name == et.Keys.ID || d.settings["unsigned"] == true {
			c.SQLType = "INT UNSIGNED"
		}
		c.AutoIncrement = base && d.name == et.Keys.ID
	case TypeEntityReference:
		c.SQLType = "INT UNSIGNED"
	case TypeUUID:
		c.SQLType = "VARCHAR(128)"
	case TypeLanguage:
		c.SQLType = fmt.Sprintf("VARCHAR(%d)", LanguageMaxLength)
	case TypeString:
		n := d.MaxLength()
		if n <= 0 {
			n = DefaultMaxLength
		}
		c.SQLType = fmt.Sprintf("VARCHAR(%d)", n)
	case TypeBoolean:
		c.SQLType = "TINYINT"
	case TypeCreated, TypeChanged:
		c.SQLType = "INT"
	default:
		c.SQLType = "TEXT"
	}
	return c
}

// CreateSQL 渲染 MySQL 建表语句
func (t Table) CreateSQL() string {
	var lines []string
	for _, c := range t.Columns {
		line := fmt.Sprintf("  `%s` %s", c.Name, c.SQLType)
		if c.NotNull {
			line += " NOT NULL"
		} else {
			line += " NULL"
		}
		if c.AutoIncrement {
			line += " AUTO_INCREMENT"
		}
		lines = append(lines, line)
	}
	if len(t.PrimaryKey) > 0 {
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", quoteColumns(t.PrimaryKey)))
	}
	for _, idx := range t.Indexes {
		kind := "KEY"
		if idx.Unique {
			kind = "UNIQUE KEY"
		}
		lines = append(lines, fmt.Sprintf("  %s `%s` (%s)", kind, idx.Name, quoteColumns(idx.Columns)))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n%s\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		t.Name, strings.Join(lines, ",\n"))
}

func quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
	}
	return strings.Join(quoted, ", ")
}
