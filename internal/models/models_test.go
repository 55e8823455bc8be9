package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	var c struct {
		ID models.ID `json:"id"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &c))
	assert.Equal(t, models.ID("42"), c.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "a1b2"}`), &c))
	assert.Equal(t, models.ID("a1b2"), c.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &c))
	assert.True(t, c.ID.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &c))
}

func TestID_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(models.Category{ID: "7", Name: "Books"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"7"`)
	assert.Contains(t, string(b), `"productCount":0`)
}

func TestOrder_DecodesUnderscoreID(t *testing.T) {
	var o models.Order
	require.NoError(t, json.Unmarshal([]byte(`{"_id": 9, "firstName": "Ann", "lastName": "Lee"}`), &o))
	assert.Equal(t, models.ID("9"), o.RecordID())
	assert.Equal(t, "Ann Lee", o.CustomerName())
}

func TestParseFeatureList(t *testing.T) {
	f := models.ParseFeatureList("  Waterproof \n\nFast charging\n")
	assert.Equal(t, models.FeatureList{"Waterproof", "Fast charging"}, f)
	assert.NoError(t, f.Validate())
}

func TestFeatureList_Validate(t *testing.T) {
	assert.Error(t, models.FeatureList{"Light", "light"}.Validate(), "duplicates ignore case")
	assert.Error(t, models.FeatureList{"ok", "  "}.Validate())
	assert.Error(t, models.FeatureList{strings.Repeat("x", 201)}.Validate())

	many := make(models.FeatureList, 51)
	for i := range many {
		many[i] = strings.Repeat("f", i+1)
	}
	assert.Error(t, many.Validate())
}

func TestFeatureList_EncodeDecode(t *testing.T) {
	var empty models.FeatureList
	s, err := empty.Encode()
	require.NoError(t, err)
	assert.Equal(t, "[]", s)

	decoded, err := models.DecodeFeatureList(`["a","b"]`)
	require.NoError(t, err)
	assert.Equal(t, models.FeatureList{"a", "b"}, decoded)

	_, err = models.DecodeFeatureList(`{"a":1}`)
	assert.Error(t, err)
}

func TestParseSpecMap(t *testing.T) {
	s, err := models.ParseSpecMap("Weight: 1.2 kg\nRatio: 16:9\n\n")
	require.NoError(t, err)
	assert.Equal(t, models.SpecMap{"Weight": "1.2 kg", "Ratio": "16:9"}, s)
	assert.Equal(t, []string{"Ratio", "Weight"}, s.Keys())

	_, err = models.ParseSpecMap("no colon here")
	assert.Error(t, err)
}

func TestSpecMap_Validate(t *testing.T) {
	assert.NoError(t, models.SpecMap{"Color": "Black"}.Validate())
	assert.Error(t, models.SpecMap{" ": "x"}.Validate())
	assert.Error(t, models.SpecMap{strings.Repeat("k", 101): "x"}.Validate())
	assert.Error(t, models.SpecMap{"k": strings.Repeat("v", 501)}.Validate())
}

func TestSpecMap_EncodeDecode(t *testing.T) {
	var empty models.SpecMap
	s, err := empty.Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}", s)

	decoded, err := models.DecodeSpecMap(`{"Color":"Red"}`)
	require.NoError(t, err)
	assert.Equal(t, "Red", decoded["Color"])

	decoded, err = models.DecodeSpecMap("")
	require.NoError(t, err)
	assert.Nil(t, decoded)
}

func TestSearchFields_IncludeNestedText(t *testing.T) {
	p := models.Product{
		Name:     "Phone",
		Features: models.FeatureList{"OLED display"},
		Specs:    models.SpecMap{"Weight": "170 g", "Color": "Black"},
		Images:   []string{"/uploads/phone.png"},
	}
	fields := p.SearchFields()
	assert.Contains(t, fields, "OLED display")
	assert.Contains(t, fields, "Weight")
	assert.Contains(t, fields, "170 g")
	assert.Contains(t, fields, "Black")
	assert.NotContains(t, fields, "/uploads/phone.png")

	o := models.Order{
		FirstName: "Ann",
		CartItems: []models.CartItem{{ID: "9", Name: "Desk Lamp", Address: "Back door"}},
	}
	assert.Contains(t, o.SearchFields(), "Desk Lamp")
	assert.Contains(t, o.SearchFields(), "Back door")
	assert.NotContains(t, o.SearchFields(), "9")
}

func TestSearchFields_ExcludeID(t *testing.T) {
	p := models.Product{ID: "electronics-1", Name: "Phone", Category: "Mobile"}
	assert.NotContains(t, p.SearchFields(), "electronics-1")
	assert.Equal(t, "", p.Image())
	p.Images = []string{"/uploads/a.png", "/uploads/b.png"}
	assert.Equal(t, "/uploads/a.png", p.Image())
}
