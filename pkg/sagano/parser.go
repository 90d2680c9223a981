package sagano

import "regexp"

// The slot listing renders one card per train. Cards carry the train name
// ("Sagano 7"), a departure and an arrival time, and a closed-seat icon when
// sold out. The surrounding markup changes between releases so parsing works
// on card text rather than structure.
var (
	timePattern  = regexp.MustCompile(`(\d{2}:\d{2})`)
	trainPattern = regexp.MustCompile(`Sagano \d+`)
)

// cardInfo is the raw material scraped from one candidate card element
type cardInfo struct {
	Text    string `json:"text"`
	SoldOut bool   `json:"soldOut"` // closed-seat icon present
}

// parseSlots turns scraped cards into slots. Nested containers repeat the
// same train, so the first card seen for a train wins. A card needs a train
// name and at least a departure and arrival time to count; anything else is
// chrome around the listing. A card without the closed-seat icon is treated
// as available, which errs toward alerting on ambiguous markup.
func parseSlots(cards []cardInfo) []Slot {
	var slots []Slot
	seen := make(map[string]bool)

	for _, card := range cards {
		trainID := trainPattern.FindString(card.Text)
		if trainID == "" {
			continue
		}
		if seen[trainID] {
			continue
		}

		times := timePattern.FindAllString(card.Text, -1)
		if len(times) < 2 {
			continue
		}

		seen[trainID] = true
		slots = append(slots, Slot{
			Time:      times[0],
			TrainID:   trainID,
			Available: !card.SoldOut,
		})
	}

	return slots
}
