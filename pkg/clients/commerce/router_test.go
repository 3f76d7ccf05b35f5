package commerce

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSegment(t *testing.T) {
	tests := []struct {
		resource ResourceType
		segment  string
	}{
		{resource: "order", segment: "orders"},
		{resource: "orderPayment", segment: "orderPayments"},
		{resource: "orderStatus", segment: "orderStatuses"},
		{resource: "inventory", segment: "inventories"},
		{resource: "shipment", segment: "shipments"},
		{resource: "price", segment: "prices"},
		{resource: "product", segment: "products"},
		{resource: "payment", segment: "payments"},
		{resource: "shippingPrice", segment: "shippingPrices"},
		{resource: "productCategory", segment: "productCategories"},
		{resource: "articleCategory", segment: "articleCategories"},
		{resource: "account", segment: "accounts"},
		{resource: "address", segment: "addresses"},
		{resource: "article", segment: "articles"},
	}

	for _, tt := range tests {
		t.Run(string(tt.resource), func(t *testing.T) {
			segment, err := ResolveSegment(tt.resource)
			require.NoError(t, err)
			assert.Equal(t, tt.segment, segment)
		})
	}
}

func TestResolveSegment_NotSupported(t *testing.T) {
	for _, resource := range []ResourceType{"unknownThing", "", "Order", "orders"} {
		_, err := ResolveSegment(resource)
		assert.True(t, errors.Is(err, ErrResourceNotSupported), "resource %q", resource)
	}
}

func TestResourceTypes(t *testing.T) {
	types := ResourceTypes()
	require.Len(t, types, 14)
	assert.Equal(t, ResourceOrder, types[0])

	for _, resource := range types {
		_, err := ResolveSegment(resource)
		assert.NoError(t, err)
	}

	types[0] = "mutated"
	assert.Equal(t, ResourceOrder, ResourceTypes()[0])
}

func TestResourcePath(t *testing.T) {
	tests := []struct {
		name     string
		resource ResourceType
		id       string
		nested   ResourceType
		nestedID string
		expected string
		wantErr  bool
	}{
		{name: "collection", resource: ResourceProduct, expected: "products"},
		{name: "item", resource: ResourceOrder, id: "14", expected: "orders/14"},
		{name: "nested collection", resource: ResourceOrder, id: "14", nested: ResourceShipment, expected: "orders/14/shipments"},
		{name: "nested item", resource: ResourceOrder, id: "14", nested: ResourceOrderPayment, nestedID: "2", expected: "orders/14/orderPayments/2"},
		{name: "unknown resource", resource: "widget", wantErr: true},
		{name: "unknown nested", resource: ResourceOrder, id: "14", nested: "widget", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := resourcePath(tt.resource, tt.id, tt.nested, tt.nestedID)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrResourceNotSupported)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}
