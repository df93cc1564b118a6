package clobtypes

// Token is one outcome of a market.
type Token struct {
	TokenID string  `json:"token_id"`
	Outcome string  `json:"outcome"`
	Price   float64 `json:"price"`
	Winner  bool    `json:"winner"`
}

// Market is the CLOB view of a tradeable market.
type Market struct {
	ConditionID      string  `json:"condition_id"`
	QuestionID       string  `json:"question_id"`
	Tokens           []Token `json:"tokens"`
	MinimumOrderSize string  `json:"minimum_order_size"`
	MinimumTickSize  string  `json:"minimum_tick_size"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	EndDateISO       string  `json:"end_date_iso"`
	GameStartTime    string  `json:"game_start_time"`
	Active           bool    `json:"active"`
	Closed           bool    `json:"closed"`
	MarketSlug       string  `json:"market_slug"`
	Icon             string  `json:"icon"`
	FPMM             string  `json:"fpmm"`
	NegRisk          bool    `json:"neg_risk"`
	MakerBaseFee     int64   `json:"maker_base_fee"`
	TakerBaseFee     int64   `json:"taker_base_fee"`
}

// MarketsPage is one page of the markets listing.
type MarketsPage struct {
	Limit      int      `json:"limit"`
	Count      int      `json:"count"`
	NextCursor string   `json:"next_cursor"`
	Data       []Market `json:"data"`
}
