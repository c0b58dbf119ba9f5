package domain

import "time"

// MaxGiftPrice is the largest price the NUMERIC(10,2) column holds.
const MaxGiftPrice = 99999999.99

type Gift struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Link        *string   `json:"link,omitempty"`
	ReservedBy  *User     `json:"reserved_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (g Gift) IsReserved() bool {
	return g.ReservedBy != nil
}

func (g Gift) IsReservedBy(userID uint) bool {
	return g.ReservedBy != nil && g.ReservedBy.ID == userID
}

type GiftStats struct {
	Total     int `json:"total"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

func ComputeGiftStats(gifts []Gift) GiftStats {
	stats := GiftStats{Total: len(gifts)}
	for _, g := range gifts {
		if g.IsReserved() {
			stats.Reserved++
		}
	}
	stats.Available = stats.Total - stats.Reserved

	return stats
}

type GiftList struct {
	Gifts []Gift    `json:"gifts"`
	Stats GiftStats `json:"stats"`
}
