package model_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/LionsAd/commerce/internal/account"
	"github.com/LionsAd/commerce/internal/field"
	"github.com/LionsAd/commerce/internal/model"
)

func requestContext(user *model.User, at time.Time) context.Context {
	ctx := field.WithRequestTime(context.Background(), at)
	if user != nil {
		ctx = account.WithAccount(ctx, user.Account())
	}
	return ctx
}

func TestNewProductVariation_AppliesDefaults(t *testing.T) {
	c := qt.New(t)

	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	owner := &model.User{ID: 12, Username: "merchant", Status: model.UserStatusActive}

	v := model.NewProductVariation(requestContext(owner, at), "default", "en")

	c.Assert(v.IsNew(), qt.IsTrue)
	c.Assert(v.Type(), qt.Equals, "default")
	c.Assert(v.Langcode(), qt.Equals, "en")
	c.Assert(v.IsDefaultTranslation(), qt.IsTrue)
	c.Assert(v.Status(), qt.IsTrue)
	c.Assert(v.OwnerID(), qt.Equals, uint64(12))
	c.Assert(v.UUID(), qt.HasLen, 36)
	c.Assert(v.CreatedTime(), qt.Equals, at.Unix())
	c.Assert(v.ChangedTime(), qt.Equals, at.Unix())
	c.Assert(v.SKU(), qt.Equals, "")
}

func TestNewProductVariation_AnonymousOwner(t *testing.T) {
	c := qt.New(t)

	v := model.NewProductVariation(context.Background(), "default", "en")
	c.Assert(v.OwnerID(), qt.Equals, account.AnonymousID)
}

func TestProductVariation_FluentSetters(t *testing.T) {
	c := qt.New(t)

	v := model.NewProductVariation(context.Background(), "default", "en")
	same := v.SetSKU("TSHIRT-RED-M").SetStatus(false).SetCreatedTime(100).SetChangedTime(200)

	c.Assert(same, qt.Equals, v)
	c.Assert(v.SKU(), qt.Equals, "TSHIRT-RED-M")
	c.Assert(v.Label(), qt.Equals, "TSHIRT-RED-M")
	c.Assert(v.Status(), qt.IsFalse)
	c.Assert(v.CreatedTime(), qt.Equals, int64(100))
	c.Assert(v.ChangedTime(), qt.Equals, int64(200))
}

func TestProductVariation_Owner(t *testing.T) {
	c := qt.New(t)

	v := model.NewProductVariation(context.Background(), "default", "en")
	owner := &model.User{ID: 5, Username: "alice"}

	c.Assert(v.SetOwner(owner), qt.Equals, v)
	c.Assert(v.Owner(), qt.Equals, owner)
	c.Assert(v.OwnerID(), qt.Equals, uint64(5))

	v.SetOwnerID(5)
	c.Assert(v.Owner(), qt.Equals, owner)

	v.SetOwnerID(9)
	c.Assert(v.OwnerID(), qt.Equals, uint64(9))
	c.Assert(v.Owner(), qt.IsNil)

	v.SetOwner(nil)
	c.Assert(v.OwnerID(), qt.Equals, uint64(0))
}

func TestProductVariation_AssignIDIsReadOnly(t *testing.T) {
	c := qt.New(t)

	v := model.NewProductVariation(context.Background(), "default", "en")
	c.Assert(v.AssignID(3), qt.IsNil)
	c.Assert(v.AssignID(3), qt.IsNil)
	c.Assert(v.AssignID(4), qt.ErrorIs, model.ErrReadOnlyField)
	c.Assert(v.ID(), qt.Equals, uint64(3))
	c.Assert(v.IsNew(), qt.IsFalse)
}

func TestProductVariation_Touch(t *testing.T) {
	c := qt.New(t)

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	edited := created.Add(48 * time.Hour)

	v := model.NewProductVariation(requestContext(nil, created), "default", "en")
	v.Touch(requestContext(nil, edited))

	c.Assert(v.CreatedTime(), qt.Equals, created.Unix())
	c.Assert(v.ChangedTime(), qt.Equals, edited.Unix())
}

func TestProductVariation_Translation(t *testing.T) {
	c := qt.New(t)

	v := model.ProductVariationFromRecord(model.ProductVariationRecord{
		ID: 8, Type: "default", UUID: "u-8", Langcode: "en", DefaultLangcode: true, SKU: "MUG", Status: true,
	})

	fr := v.Translation("fr")
	c.Assert(fr.ID(), qt.Equals, uint64(8))
	c.Assert(fr.UUID(), qt.Equals, "u-8")
	c.Assert(fr.Langcode(), qt.Equals, "fr")
	c.Assert(fr.IsDefaultTranslation(), qt.IsFalse)
	c.Assert(fr.SKU(), qt.Equals, "MUG")

	fr.SetSKU("TASSE")
	c.Assert(v.SKU(), qt.Equals, "MUG")
}

func TestProductVariation_JSON(t *testing.T) {
	c := qt.New(t)

	v := model.ProductVariationFromRecord(model.ProductVariationRecord{
		ID: 1, Type: "default", UUID: "u-1", Langcode: "en", DefaultLangcode: true,
		SKU: "SKU-1", Status: true, Created: 10, Changed: 20,
	}).SetOwner(&model.User{
		ID: 2, Username: "bob", Email: "bob@private.example", GroupID: model.AdminGroupID,
		Status: model.UserStatusActive, Token: "secret",
	})

	data, err := json.Marshal(v)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, `"sku":"SKU-1"`)
	c.Assert(string(data), qt.Contains, `"username":"bob"`)
	c.Assert(string(data), qt.Not(qt.Contains), "secret")
	c.Assert(string(data), qt.Not(qt.Contains), "email")
	c.Assert(string(data), qt.Not(qt.Contains), "group_id")

	var decoded model.ProductVariation
	c.Assert(json.Unmarshal(data, &decoded), qt.IsNil)
	c.Assert(decoded.Record(), qt.DeepEquals, v.Record())
	c.Assert(decoded.Owner().Username, qt.Equals, "bob")
}

func TestProductVariation_ValuesCoverEveryField(t *testing.T) {
	c := qt.New(t)

	values := model.NewProductVariation(context.Background(), "default", "en").Values()
	for _, name := range model.ProductVariationFields().Names() {
		_, ok := values[name]
		c.Assert(ok, qt.IsTrue, qt.Commentf("missing value for %s", name))
	}
}
