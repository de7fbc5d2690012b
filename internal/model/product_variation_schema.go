package model

import (
	"context"
	"sync"

	"github.com/LionsAd/commerce/internal/account"
	"github.com/LionsAd/commerce/internal/field"
)

const (
	ProductVariationEntityTypeID     = "commerce_product_variation"
	ProductVariationTypeEntityTypeID = "commerce_product_variation_type"

	PermissionAdministerProducts = "administer products"

	// ConstraintProductSku SKU 唯一性约束
	ConstraintProductSku = "ProductSku"
)

// ProductVariationEntityType 商品变体实体类型声明
func ProductVariationEntityType() field.EntityType {
	return field.EntityType{
		ID:              ProductVariationEntityTypeID,
		Label:           "Product variation",
		AdminPermission: PermissionAdministerProducts,
		Fieldable:       true,
		Translatable:    true,
		BaseTable:       "commerce_product_variation",
		DataTable:       "commerce_product_variation_field_data",
		Keys: field.EntityKeys{
			ID:       "variation_id",
			Label:    "sku",
			Langcode: "langcode",
			UUID:     "uuid",
			Bundle:   "type",
		},
		BundleEntityType: ProductVariationTypeEntityTypeID,
	}
}

var productVariationFields = sync.OnceValue(buildProductVariationFields)

// ProductVariationFields 商品变体的基础字段，按声明顺序
func ProductVariationFields() *field.Definitions {
	return productVariationFields()
}

func buildProductVariationFields() *field.Definitions {
	fields := field.NewDefinitions()

	fields.Add("variation_id", field.Create(field.TypeInteger).
		SetLabel("Variation ID").
		SetReadOnly(true))

	fields.Add("uid", field.Create(field.TypeEntityReference).
		SetLabel("Author").
		SetSetting("target_type", "user").
		SetSetting("handler", "default").
		SetDefaultValueCallback(CurrentUserID).
		SetTranslatable(true).
		SetDisplayConfigurable(field.DisplayForm, true))

	fields.Add("uuid", field.Create(field.TypeUUID).
		SetLabel("UUID").
		SetReadOnly(true))

	fields.Add("langcode", field.Create(field.TypeLanguage).
		SetLabel("Language code"))

	fields.Add("sku", field.Create(field.TypeString).
		SetLabel("SKU").
		SetDescription("The unique, human-readable identifier for a product variation.").
		SetRequired(true).
		AddConstraint(ConstraintProductSku).
		SetTranslatable(true).
		SetDisplayOptions(field.DisplayView, field.DisplayOptions{
			Label:  "hidden",
			Type:   "string",
			Weight: -4,
		}).
		SetDisplayOptions(field.DisplayForm, field.DisplayOptions{
			Type:   "string_textfield",
			Weight: -4,
		}).
		SetDisplayConfigurable(field.DisplayForm, true).
		SetDisplayConfigurable(field.DisplayView, true))

	fields.Add("type", field.Create(field.TypeString).
		SetLabel("Type").
		SetRequired(true))

	fields.Add("status", field.Create(field.TypeBoolean).
		SetLabel("Active").
		SetDescription("Disabled product variations cannot be added to shopping carts.").
		SetDefaultValue(true).
		SetTranslatable(true).
		SetSettings(map[string]interface{}{
			"default_value": 1,
		}).
		SetDisplayOptions(field.DisplayForm, field.DisplayOptions{
			Type:   "boolean_checkbox",
			Weight: 10,
			Settings: map[string]interface{}{
				"display_label": true,
			},
		}).
		SetDisplayConfigurable(field.DisplayForm, true))

	fields.Add("created", field.Create(field.TypeCreated).
		SetLabel("Created").
		SetDescription("The time that the product variation was created.").
		SetTranslatable(true).
		SetDisplayConfigurable(field.DisplayForm, true))

	fields.Add("changed", field.Create(field.TypeChanged).
		SetLabel("Changed").
		SetDescription("The time that the product variation was last edited.").
		SetTranslatable(true))

	return fields
}

// CurrentUserID uid 字段的默认值回调：当前请求的认证用户ID
func CurrentUserID(ctx context.Context) interface{} {
	return account.CurrentUserID(ctx)
}
