package orderdto

import "io"

type CreateOrderInput struct {
	ClientID string
	ShopID   string
	Lines    []OrderLineInput
}

type OrderLineInput struct {
	ServiceName string
	Copies      int
	ColorMode   string
	Size        string

	// Optional payload uploaded to the blob store.
	FileName    string
	ContentType string
	Payload     io.Reader
}
