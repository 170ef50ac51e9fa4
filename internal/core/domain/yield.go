package domain

// YieldProtocol is a yield opportunity on one chain.
type YieldProtocol struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Chain           Chain   `json:"chain"`
	APY             float64 `json:"apy"` // percent
	TVL             string  `json:"tvl"` // display only
	Logo            string  `json:"logo,omitempty"`
	Description     string  `json:"description,omitempty"`
	ContractAddress string  `json:"contractAddress,omitempty"`
}

// YieldRecommendation compares the best protocol on the current chain with
// the best one on the other chain.
type YieldRecommendation struct {
	ShouldBridge        bool          `json:"shouldBridge"`
	CurrentProtocol     YieldProtocol `json:"currentProtocol"`
	RecommendedProtocol YieldProtocol `json:"recommendedProtocol"`
	PotentialProfit     float64       `json:"potentialProfit"`
	APYDifference       float64       `json:"apyDifference"`
}
