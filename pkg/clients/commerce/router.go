package commerce

import "fmt"

// ResourceType is a logical resource name accepted by the platform
type ResourceType string

const (
	ResourceOrder           ResourceType = "order"
	ResourceOrderPayment    ResourceType = "orderPayment"
	ResourceOrderStatus     ResourceType = "orderStatus"
	ResourceInventory       ResourceType = "inventory"
	ResourceShipment        ResourceType = "shipment"
	ResourcePrice           ResourceType = "price"
	ResourceProduct         ResourceType = "product"
	ResourcePayment         ResourceType = "payment"
	ResourceShippingPrice   ResourceType = "shippingPrice"
	ResourceProductCategory ResourceType = "productCategory"
	ResourceArticleCategory ResourceType = "articleCategory"
	ResourceAccount         ResourceType = "account"
	ResourceAddress         ResourceType = "address"
	ResourceArticle         ResourceType = "article"
)

var resourceTypes = []ResourceType{
	ResourceOrder,
	ResourceOrderPayment,
	ResourceOrderStatus,
	ResourceInventory,
	ResourceShipment,
	ResourcePrice,
	ResourceProduct,
	ResourcePayment,
	ResourceShippingPrice,
	ResourceProductCategory,
	ResourceArticleCategory,
	ResourceAccount,
	ResourceAddress,
	ResourceArticle,
}

var resourceSegments = map[ResourceType]string{
	ResourceOrder:           "orders",
	ResourceOrderPayment:    "orderPayments",
	ResourceOrderStatus:     "orderStatuses",
	ResourceInventory:       "inventories",
	ResourceShipment:        "shipments",
	ResourcePrice:           "prices",
	ResourceProduct:         "products",
	ResourcePayment:         "payments",
	ResourceShippingPrice:   "shippingPrices",
	ResourceProductCategory: "productCategories",
	ResourceArticleCategory: "articleCategories",
	ResourceAccount:         "accounts",
	ResourceAddress:         "addresses",
	ResourceArticle:         "articles",
}

// ResolveSegment maps a resource type to its URI path segment
func ResolveSegment(resource ResourceType) (string, error) {
	segment, ok := resourceSegments[resource]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrResourceNotSupported, string(resource))
	}
	return segment, nil
}

// ResourceTypes lists every supported resource type in a stable order
func ResourceTypes() []ResourceType {
	types := make([]ResourceType, len(resourceTypes))
	copy(types, resourceTypes)
	return types
}

// resourcePath builds <segment>[/<id>][/<nestedSegment>][/<nestedID>]
func resourcePath(resource ResourceType, id string, nested ResourceType, nestedID string) (string, error) {
	segment, err := ResolveSegment(resource)
	if err != nil {
		return "", err
	}

	path := segment
	if id != "" {
		path += "/" + id
	}

	if nested != "" {
		nestedSegment, err := ResolveSegment(nested)
		if err != nil {
			return "", err
		}
		path += "/" + nestedSegment
		if nestedID != "" {
			path += "/" + nestedID
		}
	}

	return path, nil
}
