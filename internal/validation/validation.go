// Package validation holds the product field rules checked before any
// request reaches storage.
//
// Rules are expressed as validator struct tags and evaluated in field
// declaration order (name, price, then id). Only the first failing rule is
// reported, as an *Error carrying the client-facing message.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgNameEmpty    = "Product name should not be empty."
	MsgNameTooShort = "Product name must have at least six characters."
	MsgPriceInvalid = "Product price must be a number greater than zero."
	MsgIDInvalid    = "Product ID must be a valid UUID."

	msgFallback = "Validation failed."

	// bounds on digits+exponent; float64 spans roughly 1e-324 to 1.8e308
	maxPriceMagnitude = 310
	minPriceMagnitude = -330
)

// messages maps "<StructField>.<tag>" to the message sent to clients.
var messages = map[string]string{
	"Name.required": MsgNameEmpty,
	"Name.min":      MsgNameTooShort,
	"Price.price":   MsgPriceInvalid,
	"ID.productid":  MsgIDInvalid,
}

// Error is a failed validation rule.
type Error struct {
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Price is a product price as sent by clients: a JSON number or a numeric
// string. Any other JSON value decodes to the empty Price, which fails the
// price rule instead of the body parser.
type Price string

// UnmarshalJSON keeps the literal text of numbers and strings.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*p = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*p = Price(data)
	default:
		*p = ""
	}
	return nil
}

// Decimal parses the price. It fails for anything that is not a number.
func (p Price) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(string(p))
}

// Float64 returns the price as stored. It fails when the nearest float64
// is not a finite number greater than zero.
func (p Price) Float64() (float64, error) {
	d, err := p.Decimal()
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", string(p), err)
	}
	// decimal magnitude outside float64's range; skips building a huge big.Rat
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	if magnitude > maxPriceMagnitude || magnitude < minPriceMagnitude {
		return 0, fmt.Errorf("price %q is out of range", string(p))
	}
	f := d.InexactFloat64()
	if f <= 0 || math.IsInf(f, 0) {
		return 0, fmt.Errorf("price %q is out of range", string(p))
	}
	return f, nil
}

// ProductInput is the body of create and update requests.
type ProductInput struct {
	Name  string `json:"name" validate:"required,min=6"`
	Price Price  `json:"price" validate:"price"`
}

// productUpdate orders the rules of an update: body fields first, then id.
type productUpdate struct {
	ProductInput
	ID string `validate:"productid"`
}

type productID struct {
	ID string `validate:"productid"`
}

// Validator runs the product rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the price and productid rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("price", validatePrice); err != nil {
		panic(fmt.Sprintf("failed to register price rule: %v", err))
	}
	if err := v.RegisterValidation("productid", validateProductID); err != nil {
		panic(fmt.Sprintf("failed to register productid rule: %v", err))
	}
	return &Validator{validate: v}
}

// Product trims the name and checks the create rules.
func (v *Validator) Product(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	return v.check(input)
}

// ProductUpdate checks the update rules and returns the normalized id.
func (v *Validator) ProductUpdate(id string, input *ProductInput) (string, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := v.check(&productUpdate{ProductInput: *input, ID: id}); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

// ID checks a path id and returns it normalized to lower case.
func (v *Validator) ID(id string) (string, error) {
	if err := v.check(&productID{ID: id}); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

func (v *Validator) check(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return &Error{Message: msgFallback}
	}

	first := validationErrors[0]
	key := first.StructField() + "." + first.Tag()
	msg, ok := messages[key]
	if !ok {
		msg = msgFallback
	}
	return &Error{
		Field:   strings.ToLower(first.StructField()),
		Rule:    first.Tag(),
		Message: msg,
	}
}

// validatePrice checks the value that will be stored, so prices that
// overflow or round to zero as float64 are rejected.
func validatePrice(fl validator.FieldLevel) bool {
	price, ok := fl.Field().Interface().(Price)
	if !ok {
		return false
	}
	_, err := price.Float64()
	return err == nil
}

// validateProductID accepts only the canonical 8-4-4-4-12 form.
func validateProductID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if len(id) != 36 {
		return false
	}
	return uuid.Validate(id) == nil
}
