package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Suit enumerates the five tarot suits.
type Suit string

const (
	SuitMajor     Suit = "Major"
	SuitCups      Suit = "Cups"
	SuitWands     Suit = "Wands"
	SuitSwords    Suit = "Swords"
	SuitPentacles Suit = "Pentacles"
)

// Card identifies a single tarot card. Orientation is not part of the card;
// it is decided per draw.
type Card struct {
	Name   string `json:"name"`
	Suit   Suit   `json:"suit"`
	Number int    `json:"number"`
}

// DeckSize is the number of cards in a full tarot deck.
const DeckSize = 78

var majorArcana = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor",
	"The Hierophant", "The Lovers", "The Chariot", "Strength", "The Hermit",
	"Wheel of Fortune", "Justice", "The Hanged Man", "Death", "Temperance",
	"The Devil", "The Tower", "The Star", "The Moon", "The Sun", "Judgement", "The World",
}

var minorSuits = []Suit{SuitCups, SuitWands, SuitSwords, SuitPentacles}

// FullDeck returns a fresh deck in canonical order: the 22 major arcana
// (numbered 0-21) followed by each minor suit numbered 1-14. The order is
// normative — shuffles permute deck indices, so verifiers must build the
// identical template.
func FullDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for i, name := range majorArcana {
		deck = append(deck, Card{Name: name, Suit: SuitMajor, Number: i})
	}
	for _, suit := range minorSuits {
		for n := 1; n <= 14; n++ {
			deck = append(deck, Card{
				Name:   fmt.Sprintf("%d of %s", n, suit),
				Suit:   suit,
				Number: n,
			})
		}
	}
	return deck
}

// Orientation is the facing of a drawn card.
type Orientation string

const (
	OrientationUpright  Orientation = "upright"
	OrientationReversed Orientation = "reversed"
)

// Spread enumerates the supported reading layouts.
type Spread string

const (
	SpreadSingle Spread = "single"
	SpreadThree  Spread = "three-card"
	SpreadFive   Spread = "five-card"
)

var spreadSlots = map[Spread][]string{
	SpreadSingle: {"Present"},
	SpreadThree:  {"Situation", "Action", "Outcome"},
	SpreadFive:   {"Past", "Present", "Future", "Advice", "Outcome"},
}

// Valid reports whether s is a known spread.
func (s Spread) Valid() bool {
	_, ok := spreadSlots[s]
	return ok
}

// CardCount returns how many positions the spread requires.
func (s Spread) CardCount() int {
	return len(spreadSlots[s])
}

// Slots returns the slot labels for the spread, in reading order.
func (s Spread) Slots() []string {
	return spreadSlots[s]
}

// SeedSize is the length in bytes of a session's secret seed.
const SeedSize = 32

// Session is the server-side state between commitment and reveal. The seed
// stays private until a successful draw reveals it.
type Session struct {
	ID         string
	Seed       []byte
	CommitHash string
	CreatedAt  int64 // Unix milliseconds
	Spread     Spread
}

// DrawnCard is one revealed card in a result.
type DrawnCard struct {
	Card
	Orientation Orientation `json:"orientation"`
	Position    int         `json:"position"`
	Slot        string      `json:"slotLabel"`
}

// DrawResult is the full reveal handed back to the client. It carries
// everything a third party needs to reproduce the draw.
type DrawResult struct {
	Cards        []DrawnCard `json:"cards"`
	RevealedSeed string      `json:"revealedSeed"` // base64
	CommitHash   string      `json:"commitHash"`
	Timestamp    int64       `json:"timestamp"`
	AlgorithmID  string      `json:"algorithmId"`
}

// SessionRecord is the gorm row backing the postgres session store.
type SessionRecord struct {
	ID         string `gorm:"primaryKey"`
	Seed       []byte `gorm:"not null"`
	CommitHash string `gorm:"not null"`
	CreatedAt  int64  `gorm:"not null;index"` // Unix milliseconds
	Spread     string `gorm:"not null"`
}

// TableName keeps the table name stable regardless of gorm pluralization.
func (SessionRecord) TableName() string { return "draw_sessions" }

// Migrate creates or updates the tables used by the postgres session store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&SessionRecord{})
}
