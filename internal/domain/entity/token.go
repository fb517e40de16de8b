package entity

// TokenInfo holds the catalog metadata of a tracked token.
type TokenInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Logo     string `json:"logo,omitempty"`
}
