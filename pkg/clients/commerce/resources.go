package commerce

import (
	"context"
	"fmt"
	"net/http"
)

// Get retrieves a single resource, or a nested resource below it
func (c *Client) Get(ctx context.Context, opts GetOptions) (*Response, error) {
	if err := opts.Validate(); err != nil {
		c.resetCursor()
		return nil, err
	}

	path, err := resourcePath(opts.Type, opts.ID, opts.Nested, opts.NestedID)
	if err != nil {
		c.resetCursor()
		return nil, err
	}

	return c.Execute(ctx, RequestSpec{
		Method: http.MethodGet,
		Path:   path,
		Query:  opts.Query,
	})
}

// List retrieves the first page of a resource collection
func (c *Client) List(ctx context.Context, opts ListOptions) (*Response, error) {
	if err := opts.Validate(); err != nil {
		c.resetCursor()
		return nil, err
	}

	path, err := resourcePath(opts.Type, "", "", "")
	if err != nil {
		c.resetCursor()
		return nil, err
	}

	return c.Execute(ctx, RequestSpec{
		Method: http.MethodGet,
		Path:   path,
		Query:  opts.Query,
	})
}

// Build creates a resource
func (c *Client) Build(ctx context.Context, opts BuildOptions) (*Response, error) {
	if err := opts.Validate(); err != nil {
		c.resetCursor()
		return nil, err
	}

	path, err := resourcePath(opts.Type, "", "", "")
	if err != nil {
		c.resetCursor()
		return nil, err
	}

	return c.Execute(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   path,
		Body:   opts.Data,
	})
}

// Update posts new data to an existing resource
func (c *Client) Update(ctx context.Context, opts UpdateOptions) (*Response, error) {
	if err := opts.Validate(); err != nil {
		c.resetCursor()
		return nil, err
	}

	path, err := resourcePath(opts.Type, opts.ID, "", "")
	if err != nil {
		c.resetCursor()
		return nil, err
	}

	return c.Execute(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   path,
		Body:   opts.Data,
	})
}

func (c *Client) Delete(ctx context.Context, opts DeleteOptions) (*Response, error) {
	if err := opts.Validate(); err != nil {
		c.resetCursor()
		return nil, err
	}

	path, err := resourcePath(opts.Type, opts.ID, "", "")
	if err != nil {
		c.resetCursor()
		return nil, err
	}

	return c.Execute(ctx, RequestSpec{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// ResourceService scopes the resource operations to one resource type
type ResourceService struct {
	client   *Client
	resource ResourceType
}

// Resource returns the operations for a resource type. Unsupported types are
// reported as ValidationErrors when an operation is called.
func (c *Client) Resource(resource ResourceType) *ResourceService {
	return &ResourceService{client: c, resource: resource}
}

func (s *ResourceService) Type() ResourceType {
	return s.resource
}

func (s *ResourceService) Get(ctx context.Context, id string, query Query) (*Response, error) {
	return s.client.Get(ctx, GetOptions{Type: s.resource, ID: id, Query: query})
}

func (s *ResourceService) List(ctx context.Context, query Query) (*Response, error) {
	return s.client.List(ctx, ListOptions{Type: s.resource, Query: query})
}

// ListNested lists the nested resources of one item, e.g. the shipments of an order
func (s *ResourceService) ListNested(ctx context.Context, id string, nested ResourceType, query Query) (*Response, error) {
	return s.client.Get(ctx, GetOptions{Type: s.resource, ID: id, Nested: nested, Query: query})
}

func (s *ResourceService) GetNested(ctx context.Context, id string, nested ResourceType, nestedID string, query Query) (*Response, error) {
	return s.client.Get(ctx, GetOptions{Type: s.resource, ID: id, Nested: nested, NestedID: nestedID, Query: query})
}

func (s *ResourceService) Build(ctx context.Context, data any) (*Response, error) {
	return s.client.Build(ctx, BuildOptions{Type: s.resource, Data: data})
}

func (s *ResourceService) Update(ctx context.Context, id string, data any) (*Response, error) {
	return s.client.Update(ctx, UpdateOptions{Type: s.resource, ID: id, Data: data})
}

func (s *ResourceService) Delete(ctx context.Context, id string) (*Response, error) {
	return s.client.Delete(ctx, DeleteOptions{Type: s.resource, ID: id})
}

func (c *Client) Orders() *ResourceService            { return c.Resource(ResourceOrder) }
func (c *Client) OrderPayments() *ResourceService     { return c.Resource(ResourceOrderPayment) }
func (c *Client) OrderStatuses() *ResourceService     { return c.Resource(ResourceOrderStatus) }
func (c *Client) Inventories() *ResourceService       { return c.Resource(ResourceInventory) }
func (c *Client) Shipments() *ResourceService         { return c.Resource(ResourceShipment) }
func (c *Client) Prices() *ResourceService            { return c.Resource(ResourcePrice) }
func (c *Client) Products() *ResourceService          { return c.Resource(ResourceProduct) }
func (c *Client) Payments() *ResourceService          { return c.Resource(ResourcePayment) }
func (c *Client) ShippingPrices() *ResourceService    { return c.Resource(ResourceShippingPrice) }
func (c *Client) ProductCategories() *ResourceService { return c.Resource(ResourceProductCategory) }
func (c *Client) ArticleCategories() *ResourceService { return c.Resource(ResourceArticleCategory) }
func (c *Client) Accounts() *ResourceService          { return c.Resource(ResourceAccount) }
func (c *Client) Addresses() *ResourceService         { return c.Resource(ResourceAddress) }
func (c *Client) Articles() *ResourceService          { return c.Resource(ResourceArticle) }

// GetOrder retrieves an order by ID
func (c *Client) GetOrder(ctx context.Context, id string) (*Response, error) {
	return c.Orders().Get(ctx, id, nil)
}

func (c *Client) GetOrders(ctx context.Context, query Query) (*Response, error) {
	return c.Orders().List(ctx, query)
}

func (c *Client) BuildOrder(ctx context.Context, order any) (*Response, error) {
	return c.Orders().Build(ctx, order)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Response, error) {
	return c.Products().Get(ctx, id, nil)
}

// GetProducts lists products; pass limit/offset style parameters in query
func (c *Client) GetProducts(ctx context.Context, query Query) (*Response, error) {
	return c.Products().List(ctx, query)
}

func (c *Client) BuildProduct(ctx context.Context, product any) (*Response, error) {
	return c.Products().Build(ctx, product)
}

// HasNext reports whether the most recent call returned a next page
func (c *Client) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cursor.HasNext()
}

// FetchNext requests the next page of the most recent call. Without a next
// page it does nothing and returns the last response. The token is read and
// followed under one lock, so no other call can replace it in between.
func (c *Client) FetchNext(ctx context.Context) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cursor.HasNext() {
		return c.lastResponse, nil
	}

	return c.execute(ctx, RequestSpec{
		Method:      http.MethodGet,
		OverrideURL: c.cursor.NextPage(),
	})
}

// NextPage requests the page following resp. It returns resp unchanged when
// there is no next page.
func (c *Client) NextPage(ctx context.Context, resp *Response) (*Response, error) {
	if resp == nil || !resp.HasNextPage {
		return resp, nil
	}

	return c.Execute(ctx, RequestSpec{
		Method:      http.MethodGet,
		OverrideURL: resp.NextPageToken,
	})
}

// EachPage executes spec and calls fn for every page until there is no next
// page, fn fails, a response is malformed, or a next page token repeats.
func (c *Client) EachPage(ctx context.Context, spec RequestSpec, fn func(*Response) error) error {
	visited := map[string]bool{}

	resp, err := c.Execute(ctx, spec)
	for {
		if err != nil {
			return err
		}

		if err := fn(resp); err != nil {
			return err
		}

		if !resp.HasNextPage {
			return nil
		}

		if visited[resp.NextPageToken] {
			return fmt.Errorf("pagination loop detected at %s", resp.NextPageToken)
		}
		visited[resp.NextPageToken] = true

		resp, err = c.NextPage(ctx, resp)
	}
}
