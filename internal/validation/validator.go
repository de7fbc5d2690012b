// Package validation 按字段声明校验商品变体，并执行具名约束。
package validation

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/language"
	apifield "k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/LionsAd/commerce/internal/field"
	"github.com/LionsAd/commerce/internal/model"
)

// Constraint 具名约束，返回字段错误列表；基础设施故障通过 error 返回
type Constraint func(ctx context.Context, v *model.ProductVariation, d *field.Definition, path *apifield.Path) (apifield.ErrorList, error)

// SKUChecker 查询SKU是否已被其他变体占用
type SKUChecker interface {
	SKUExists(ctx context.Context, sku string, excludeID uint64) (bool, error)
}

// Validator 商品变体校验器
type Validator struct {
	fields      *field.Definitions
	constraints map[string]Constraint
}

// NewValidator 创建只做字段级校验的校验器
func NewValidator(fields *field.Definitions) *Validator {
	return &Validator{fields: fields, constraints: map[string]Constraint{}}
}

// NewProductVariationValidator 创建注册了 ProductSku 约束的校验器
func NewProductVariationValidator(checker SKUChecker) *Validator {
	val := NewValidator(model.ProductVariationFields())
	val.Register(model.ConstraintProductSku, ProductSku(checker))
	return val
}

// Register 注册具名约束
func (val *Validator) Register(name string, c Constraint) {
	val.constraints[name] = c
}

// Validate 校验所有字段。字段错误合并在 ErrorList 中返回
func (val *Validator) Validate(ctx context.Context, v *model.ProductVariation) (apifield.ErrorList, error) {
	var errs apifield.ErrorList
	values := v.Values()

	for _, d := range val.fields.All() {
		path := apifield.NewPath(d.Name())
		value := values[d.Name()]

		if d.IsRequired() && isEmpty(value) {
			errs = append(errs, apifield.Required(path, fmt.Sprintf("%s field is required.", d.Label())))
			continue
		}

		switch d.Type() {
		case field.TypeString:
			if s, ok := value.(string); ok && d.MaxLength() > 0 && utf8.RuneCountInString(s) > d.MaxLength() {
				errs = append(errs, apifield.TooLong(path, s, d.MaxLength()))
				continue
			}
		case field.TypeLanguage:
			if s, ok := value.(string); ok && s != "" {
				if len(s) > d.MaxLength() {
					errs = append(errs, apifield.TooLong(path, s, d.MaxLength()))
					continue
				}
				if _, err := language.Parse(s); err != nil {
					errs = append(errs, apifield.Invalid(path, s, "must be a valid language code"))
					continue
				}
			}
		}

		for _, name := range d.Constraints() {
			c, ok := val.constraints[name]
			if !ok {
				return nil, fmt.Errorf("约束 %s 未注册", name)
			}
			found, err := c(ctx, v, d, path)
			if err != nil {
				return nil, fmt.Errorf("执行约束 %s 失败: %w", name, err)
			}
			errs = append(errs, found...)
		}
	}

	return errs, nil
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// ProductSku SKU 在所有变体中必须唯一（忽略变体自身）
func ProductSku(checker SKUChecker) Constraint {
	return func(ctx context.Context, v *model.ProductVariation, d *field.Definition, path *apifield.Path) (apifield.ErrorList, error) {
		sku := v.SKU()
		if sku == "" {
			return nil, nil
		}
		exists, err := checker.SKUExists(ctx, sku, v.ID())
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, nil
		}
		return apifield.ErrorList{&apifield.Error{
			Type:     apifield.ErrorTypeDuplicate,
			Field:    path.String(),
			BadValue: sku,
			Detail:   fmt.Sprintf("The SKU %s is already in use and must be unique.", sku),
		}}, nil
	}
}
