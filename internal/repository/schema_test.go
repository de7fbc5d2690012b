package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	qt "github.com/frankban/quicktest"

	"github.com/LionsAd/commerce/internal/model"
)

func TestSchemaStatements(t *testing.T) {
	c := qt.New(t)

	stmts := SchemaStatements()
	c.Assert(stmts, qt.HasLen, 3)
	c.Assert(stmts[0], qt.Contains, "CREATE TABLE IF NOT EXISTS `users`")
	c.Assert(stmts[1], qt.Contains, "CREATE TABLE IF NOT EXISTS `"+variationBaseTable+"`")
	c.Assert(stmts[2], qt.Contains, "CREATE TABLE IF NOT EXISTS `"+variationDataTable+"`")
}

// 手写的SQL必须覆盖字段声明推导出的每一列
func TestSchemaMatchesHandWrittenSQL(t *testing.T) {
	c := qt.New(t)

	tables := model.ProductVariationEntityType().Tables(model.ProductVariationFields())
	base, data := tables[0], tables[1]

	c.Assert(base.Name, qt.Equals, variationBaseTable)
	c.Assert(data.Name, qt.Equals, variationDataTable)

	for _, col := range base.ColumnNames() {
		if col == "variation_id" {
			continue
		}
		c.Assert(variationInsertBase, qt.Contains, col)
	}
	for _, col := range data.ColumnNames() {
		c.Assert(variationInsertData, qt.Contains, col)
		c.Assert(variationSelect, qt.Contains, col)
	}
	c.Assert(strings.Count(variationInsertData, "?"), qt.Equals, len(data.Columns))
}

func TestEnsureSchema(t *testing.T) {
	c := qt.New(t)
	db, mock := newMock(c)

	for _, stmt := range SchemaStatements() {
		mock.ExpectExec(q(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	c.Assert(EnsureSchema(context.Background(), db), qt.IsNil)
}
