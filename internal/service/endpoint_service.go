package service

import (
	_ "embed"
	"encoding/json"
)

//go:embed endpoints.json
var endpointCatalog []byte

type endpointService struct {
	catalog json.RawMessage
}

func newEndpointService() *endpointService {
	return &endpointService{catalog: json.RawMessage(endpointCatalog)}
}

// Catalog returns the endpoint description document verbatim
func (s *endpointService) Catalog() json.RawMessage {
	return s.catalog
}
