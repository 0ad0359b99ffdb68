package domain

import "time"

// LeaderboardRecord is one row of the marketplace collection
// leaderboard: aggregate 24-hour market stats for a single NFT
// collection. Field names mirror the upstream API payload.
type LeaderboardRecord struct {
	Slug               string  `json:"slug"`
	Rank               int     `json:"rank"`
	LogoSrc            string  `json:"logoSrc"`
	Name               string  `json:"name"`
	Listed             int     `json:"listed"`
	DaySales           int     `json:"daySales"`
	DayVolume          float64 `json:"dayVolume"`
	FloorPrice         float64 `json:"floorPrice"`
	PreviousFloorPrice float64 `json:"previousFloorPrice"`
	LastUpdated        int64   `json:"lastUpdated"`
}

// FloorChangePct returns the floor move against the previous
// observation in percent. Zero previous floor yields zero.
func (r LeaderboardRecord) FloorChangePct() float64 {
	if r.PreviousFloorPrice == 0 {
		return 0
	}
	return (r.FloorPrice - r.PreviousFloorPrice) / r.PreviousFloorPrice * 100
}

// ListedNFT is a single item currently offered for sale. Slug ties it
// back to its parent collection.
type ListedNFT struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Slug     string  `json:"slug"`
	ImageURL string  `json:"image_url,omitempty"`
}

// EnrichedRecord is a leaderboard record with its active listings
// joined on. ListedNFTs is never nil; collections without listings
// carry an empty slice.
type EnrichedRecord struct {
	LeaderboardRecord
	ListedNFTs []ListedNFT `json:"listedNfts"`
}

// ChartPoint is one observation in a collection's floor/volume series.
type ChartPoint struct {
	Timestamp       time.Time `json:"timestamp"`
	Floor           float64   `json:"floor"`
	Volume          float64   `json:"volume"`
	AveragePrice24h float64   `json:"average_price_24hr"`
	Volume24h       float64   `json:"volume_24hr"`
}

// CollectionStats is the summary snapshot for one collection, derived
// from its latest leaderboard row. Computed on read, never stored.
type CollectionStats struct {
	Slug           string  `json:"slug"`
	Name           string  `json:"name"`
	Listed         int     `json:"listed"`
	DaySales       int     `json:"daySales"`
	DayVolume      float64 `json:"dayVolume"`
	FloorPrice     float64 `json:"floorPrice"`
	FloorChangePct float64 `json:"floorChangePct"`
	LastUpdated    int64   `json:"lastUpdated"`
}

// ConversationMessage is one turn of an advisor chat.
type ConversationMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}
