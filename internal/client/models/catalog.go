package models

import "strconv"

// GameSummary is one candidate title returned by a catalog search.
type GameSummary struct {
	GameID   string `json:"gameID"`
	External string `json:"external"`
	Cheapest string `json:"cheapest"`
	Thumb    string `json:"thumb"`
}

// GameInfo describes the game a set of deals belongs to.
type GameInfo struct {
	Title string `json:"title"`
}

// Deal is a single store offer for a game. Prices are kept as the decimal
// strings the catalog returns.
type Deal struct {
	StoreID     string `json:"storeID"`
	DealID      string `json:"dealID"`
	Price       string `json:"price"`
	RetailPrice string `json:"retailPrice"`
	Savings     string `json:"savings"`
}

// SavingsPercent parses Savings. ok is false when the catalog sent an
// empty or non-numeric value.
func (d Deal) SavingsPercent() (pct float64, ok bool) {
	v, err := strconv.ParseFloat(d.Savings, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GameDeals is the deal listing for one game.
type GameDeals struct {
	Info  GameInfo `json:"info"`
	Deals []Deal   `json:"deals"`
}

// Store is a catalog storefront.
type Store struct {
	StoreID   string `json:"storeID"`
	StoreName string `json:"storeName"`
}
