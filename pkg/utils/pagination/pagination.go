package pagination

// Metadata is the pagination state derived from a response payload
type Metadata struct {
	HasNextPage bool
	NextPage    string
}

// ParseResponseMetadata reads metadata.pagination.nextPage from a decoded payload.
//
// Only object payloads without a "message" field carry pagination. A nextPage
// that is null, missing, empty or not a string means there is no next page.
func ParseResponseMetadata(payload any) Metadata {
	root, ok := payload.(map[string]any)
	if !ok {
		return Metadata{}
	}

	if _, isMessage := root["message"]; isMessage {
		return Metadata{}
	}

	metadata, ok := root["metadata"].(map[string]any)
	if !ok {
		return Metadata{}
	}

	pagination, ok := metadata["pagination"].(map[string]any)
	if !ok {
		return Metadata{}
	}

	nextPage, ok := pagination["nextPage"].(string)
	if !ok || nextPage == "" {
		return Metadata{}
	}

	return Metadata{
		HasNextPage: true,
		NextPage:    nextPage,
	}
}

// Cursor tracks whether another page exists and where to fetch it from.
// The zero value has no next page. Cursor is not safe for concurrent use.
type Cursor struct {
	metadata Metadata
}

// Reset clears the cursor so stale pagination never leaks into the next call
func (c *Cursor) Reset() {
	c.metadata = Metadata{}
}

// Update replaces the cursor state with the pagination found in payload
func (c *Cursor) Update(payload any) {
	c.metadata = ParseResponseMetadata(payload)
}

func (c *Cursor) HasNext() bool {
	return c.metadata.HasNextPage
}

// NextPage returns the endpoint of the next page, or "" when there is none
func (c *Cursor) NextPage() string {
	return c.metadata.NextPage
}

func (c *Cursor) Metadata() Metadata {
	return c.metadata
}
