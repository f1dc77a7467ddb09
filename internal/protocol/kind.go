package protocol

import "fmt"

// Kind identifies which question the AI is being asked
type Kind int

const (
	KindBid Kind = iota
	KindCardPlay
	KindRevealedSelection
	KindDiscard
	KindTrumpSelection
	KindCardChoose
)

var kindNames = [...]string{
	KindBid:               "bid",
	KindCardPlay:          "card_play",
	KindRevealedSelection: "revealed_card_selection",
	KindDiscard:           "card_discard",
	KindTrumpSelection:    "trump_selection",
	KindCardChoose:        "card_choose",
}

// AllKinds returns every decision kind in declaration order
func AllKinds() []Kind {
	return []Kind{
		KindBid,
		KindCardPlay,
		KindRevealedSelection,
		KindDiscard,
		KindTrumpSelection,
		KindCardChoose,
	}
}

// String returns the wire name of the kind
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsCardKind reports whether requests of this kind carry candidate cards
func (k Kind) IsCardKind() bool {
	return k != KindBid && k.Valid()
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	return k >= KindBid && k <= KindCardChoose
}

// ParseKind parses a kind from its wire name
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown decision kind %q", s)
}
