package validation_test

import (
	"encoding/json"
	"testing"

	"mercado/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validID = "5e392019-3d9a-463f-a5cd-a7e7e631be1c"

func decode(t *testing.T, body string) validation.ProductInput {
	t.Helper()
	var input validation.ProductInput
	require.NoError(t, json.Unmarshal([]byte(body), &input))
	return input
}

func requireRuleError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var ruleErr *validation.Error
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, message, ruleErr.Message)
}

func TestProduct(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"valid", `{"name":"Arroz Alteza 1Kg","price":6.49}`, ""},
		{"price as numeric string", `{"name":"Arroz Alteza 1Kg","price":"6.49"}`, ""},
		{"empty name", `{"name":"","price":6.49}`, validation.MsgNameEmpty},
		{"blank name", `{"name":"     ","price":6.49}`, validation.MsgNameEmpty},
		{"missing name", `{"price":6.49}`, validation.MsgNameEmpty},
		{"short name", `{"name":"Arroz","price":6.49}`, validation.MsgNameTooShort},
		{"short name after trim", `{"name":"  Arroz  ","price":6.49}`, validation.MsgNameTooShort},
		{"zero price", `{"name":"Arroz Alteza 1Kg","price":0}`, validation.MsgPriceInvalid},
		{"negative price", `{"name":"Arroz Alteza 1Kg","price":-3.5}`, validation.MsgPriceInvalid},
		{"missing price", `{"name":"Arroz Alteza 1Kg"}`, validation.MsgPriceInvalid},
		{"null price", `{"name":"Arroz Alteza 1Kg","price":null}`, validation.MsgPriceInvalid},
		{"boolean price", `{"name":"Arroz Alteza 1Kg","price":true}`, validation.MsgPriceInvalid},
		{"text price", `{"name":"Arroz Alteza 1Kg","price":"cheap"}`, validation.MsgPriceInvalid},
		{"price overflows float64", `{"name":"Arroz Alteza 1Kg","price":1e400}`, validation.MsgPriceInvalid},
		{"price overflows float64 as string", `{"name":"Arroz Alteza 1Kg","price":"1e400"}`, validation.MsgPriceInvalid},
		{"price rounds to zero", `{"name":"Arroz Alteza 1Kg","price":1e-400}`, validation.MsgPriceInvalid},
		{"largest finite price", `{"name":"Arroz Alteza 1Kg","price":1.7976931348623157e308}`, ""},
		{"smallest positive price", `{"name":"Arroz Alteza 1Kg","price":5e-324}`, ""},
		{"name reported before price", `{"name":"","price":0}`, validation.MsgNameEmpty},
		{"empty body", `{}`, validation.MsgNameEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := decode(t, tt.body)
			err := v.Product(&input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			requireRuleError(t, err, tt.wantMsg)
		})
	}
}

func TestProduct_TrimsName(t *testing.T) {
	v := validation.New()
	input := decode(t, `{"name":"  Arroz Alteza 1Kg ","price":6.49}`)

	require.NoError(t, v.Product(&input))
	assert.Equal(t, "Arroz Alteza 1Kg", input.Name)
	price, err := input.Price.Float64()
	require.NoError(t, err)
	assert.Equal(t, 6.49, price)
}

func TestPrice_Float64(t *testing.T) {
	tests := []struct {
		price   validation.Price
		want    float64
		wantErr bool
	}{
		{price: "6.49", want: 6.49},
		{price: "17", want: 17},
		{price: "", wantErr: true},
		{price: "abc", wantErr: true},
		{price: "0", wantErr: true},
		{price: "-1", wantErr: true},
		{price: "1e400", wantErr: true},
		{price: "1e-400", wantErr: true},
		{price: "1e100000000", wantErr: true},
		{price: "1e-100000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.price), func(t *testing.T) {
			got, err := tt.price.Float64()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductUpdate_PriceRange(t *testing.T) {
	v := validation.New()

	for _, body := range []string{
		`{"name":"Arroz Alteza 1Kg","price":1e400}`,
		`{"name":"Arroz Alteza 1Kg","price":1e-400}`,
	} {
		input := decode(t, body)
		_, err := v.ProductUpdate(validID, &input)
		requireRuleError(t, err, validation.MsgPriceInvalid)
	}
}

func TestNew_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { validation.New() })
}

func TestProduct_NameLengthCountsCharacters(t *testing.T) {
	v := validation.New()
	input := decode(t, `{"name":"Açúcar","price":4.2}`)

	assert.NoError(t, v.Product(&input))
}

func TestID(t *testing.T) {
	v := validation.New()

	id, err := v.ID(validID)
	require.NoError(t, err)
	assert.Equal(t, validID, id)

	id, err = v.ID("5E392019-3D9A-463F-A5CD-A7E7E631BE1C")
	require.NoError(t, err)
	assert.Equal(t, validID, id)

	for _, invalid := range []string{
		"1",
		"",
		"not-a-uuid",
		"5e3920193d9a463fa5cda7e7e631be1c",
		"{5e392019-3d9a-463f-a5cd-a7e7e631be1c}",
		"urn:uuid:5e392019-3d9a-463f-a5cd-a7e7e631be1c",
		"5e392019-3d9a-463f-a5cd-a7e7e631be1z",
	} {
		_, err := v.ID(invalid)
		requireRuleError(t, err, validation.MsgIDInvalid)
	}
}

func TestProductUpdate_RuleOrder(t *testing.T) {
	v := validation.New()

	input := decode(t, `{"name":"Arroz Alteza 1Kg","price":6.49}`)
	_, err := v.ProductUpdate("1", &input)
	requireRuleError(t, err, validation.MsgIDInvalid)

	input = decode(t, `{"name":"Arroz","price":6.49}`)
	_, err = v.ProductUpdate("1", &input)
	requireRuleError(t, err, validation.MsgNameTooShort)

	input = decode(t, `{"name":"Arroz Alteza 1Kg","price":0}`)
	_, err = v.ProductUpdate("1", &input)
	requireRuleError(t, err, validation.MsgPriceInvalid)

	input = decode(t, `{"name":" Arroz Kicaldo 1Kg ","price":6.99}`)
	id, err := v.ProductUpdate(validID, &input)
	require.NoError(t, err)
	assert.Equal(t, validID, id)
	assert.Equal(t, "Arroz Kicaldo 1Kg", input.Name)
}
