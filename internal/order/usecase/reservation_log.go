package usecase

// reservationLog records the RESERVE calls that succeeded during one checkout
// attempt. It is scoped to a single call and never persisted: compensation
// only ever undoes what this attempt itself did.
type reservationLog struct {
	entries []reservationEntry
}

type reservationEntry struct {
	ProductID int
	Quantity  int
}

func (l *reservationLog) add(productID, quantity int) {
	l.entries = append(l.entries, reservationEntry{ProductID: productID, Quantity: quantity})
}

func (l *reservationLog) empty() bool {
	return len(l.entries) == 0
}
