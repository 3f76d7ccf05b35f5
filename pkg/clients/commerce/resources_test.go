package commerce

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_Routing(t *testing.T) {
	stub, server := newPlatformStub(t, writeJSON(`{"data":{}}`))
	client := newTestClient(server)
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func() (*Response, error)
		method     string
		requestURI string
		body       string
	}{
		{
			name:       "get",
			call:       func() (*Response, error) { return client.Addresses().Get(ctx, "7", NewQuery("expand", "country")) },
			method:     http.MethodGet,
			requestURI: "/v1/addresses/7?expand=country",
		},
		{
			name:       "list",
			call:       func() (*Response, error) { return client.ProductCategories().List(ctx, nil) },
			method:     http.MethodGet,
			requestURI: "/v1/productCategories",
		},
		{
			name:       "list nested",
			call:       func() (*Response, error) { return client.Orders().ListNested(ctx, "14", ResourceShipment, nil) },
			method:     http.MethodGet,
			requestURI: "/v1/orders/14/shipments",
		},
		{
			name: "get nested",
			call: func() (*Response, error) {
				return client.Orders().GetNested(ctx, "14", ResourceOrderPayment, "3", nil)
			},
			method:     http.MethodGet,
			requestURI: "/v1/orders/14/orderPayments/3",
		},
		{
			name:       "build",
			call:       func() (*Response, error) { return client.Inventories().Build(ctx, map[string]any{"stock": 4}) },
			method:     http.MethodPost,
			requestURI: "/v1/inventories",
			body:       `{"stock":4}`,
		},
		{
			name:       "update",
			call:       func() (*Response, error) { return client.Prices().Update(ctx, "9", map[string]any{"amount": 12.5}) },
			method:     http.MethodPost,
			requestURI: "/v1/prices/9",
			body:       `{"amount":12.5}`,
		},
		{
			name:       "delete",
			call:       func() (*Response, error) { return client.ShippingPrices().Delete(ctx, "2") },
			method:     http.MethodDelete,
			requestURI: "/v1/shippingPrices/2",
		},
		{
			name:       "named order list",
			call:       func() (*Response, error) { return client.GetOrders(ctx, NewQuery("status", "open")) },
			method:     http.MethodGet,
			requestURI: "/v1/orders?status=open",
		},
		{
			name:       "named product",
			call:       func() (*Response, error) { return client.GetProduct(ctx, "5") },
			method:     http.MethodGet,
			requestURI: "/v1/products/5",
		},
		{
			name:       "named order build",
			call:       func() (*Response, error) { return client.BuildOrder(ctx, map[string]any{"customer": "c-1"}) },
			method:     http.MethodPost,
			requestURI: "/v1/orders",
			body:       `{"customer":"c-1"}`,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			requests := stub.Requests()
			require.Len(t, requests, i+1)

			request := requests[i]
			assert.Equal(t, tt.method, request.Method)
			assert.Equal(t, tt.requestURI, request.RequestURI)
			assert.Equal(t, tt.body, string(request.Body))
		})
	}
}

func TestResourceService_Accessors(t *testing.T) {
	client := NewClient("K", "P")

	accessors := map[ResourceType]*ResourceService{
		ResourceOrder:           client.Orders(),
		ResourceOrderPayment:    client.OrderPayments(),
		ResourceOrderStatus:     client.OrderStatuses(),
		ResourceInventory:       client.Inventories(),
		ResourceShipment:        client.Shipments(),
		ResourcePrice:           client.Prices(),
		ResourceProduct:         client.Products(),
		ResourcePayment:         client.Payments(),
		ResourceShippingPrice:   client.ShippingPrices(),
		ResourceProductCategory: client.ProductCategories(),
		ResourceArticleCategory: client.ArticleCategories(),
		ResourceAccount:         client.Accounts(),
		ResourceAddress:         client.Addresses(),
		ResourceArticle:         client.Articles(),
	}

	assert.Len(t, accessors, len(ResourceTypes()))
	for resource, service := range accessors {
		assert.Equal(t, resource, service.Type())
	}
}

func TestResourceService_ValidationSkipsNetwork(t *testing.T) {
	stub, server := newPlatformStub(t, writeJSON(`{"data":{}}`))
	client := newTestClient(server)
	ctx := context.Background()

	_, err := client.Resource("widget").Get(ctx, "1", nil)
	assert.Equal(t, []string{"type"}, fieldsOf(t, err))

	_, err = client.Orders().Get(ctx, "", nil)
	assert.Equal(t, []string{"id"}, fieldsOf(t, err))

	_, err = client.Orders().Update(ctx, "", nil)
	assert.Equal(t, []string{"data", "id"}, fieldsOf(t, err))

	_, err = client.Delete(ctx, DeleteOptions{})
	assert.Equal(t, []string{"id", "type"}, fieldsOf(t, err))

	assert.Empty(t, stub.Requests())
}

func TestClient_Defaults(t *testing.T) {
	client := NewClient("K", "P")

	assert.Equal(t, DefaultVersion, client.Version())
	assert.Equal(t, DefaultProviderName, client.ProviderName())
	assert.NotEmpty(t, client.SessionID())
	assert.NotEqual(t, client.SessionID(), NewClient("K", "P").SessionID())
	assert.Nil(t, client.LastResponse())
	assert.Empty(t, client.LastEndpoint())
	assert.False(t, client.HasNext())

	named := NewClient("K", "P", WithProviderName("acme"), WithVersion(0))
	assert.Equal(t, "acme", named.ProviderName())
	assert.Equal(t, DefaultVersion, named.Version())
	assert.Contains(t, named.config.UserAgent, "acme")
}
