package gamestate

import (
	"fmt"
	"strings"
)

const (
	// Number of bits required to store a card order (plus one).
	bitsPerOrder = 6
	slotMask     = Hand(1<<bitsPerOrder) - 1
	maxHandSize  = 64 / bitsPerOrder
	// MaxCards bounds the card orders a Hand can hold.
	MaxCards = 1<<bitsPerOrder - 1
)

// Hand represents the ordered card orders held by one player.
// Slot 0 is the newest card.
//
// Each slot stores order+1 in 6 bits, so an empty slot is zero and
// a full hand of up to 10 cards fits in a single uint64.
// Orders must therefore be below 63, which holds for every variant
// (at most 60 cards).
type Hand uint64

func assertWithinRange(n int) {
	if n < 0 || n >= maxHandSize {
		panic(fmt.Errorf("card position %d is out of range for Hand", n))
	}
}

// NewHand creates a new Hand holding the given orders, newest first.
func NewHand(orders ...int) Hand {
	assertWithinRange(len(orders) - 1)
	result := Hand(0)
	for i, order := range orders {
		result.setNthCard(i, order)
	}
	return result
}

func (h *Hand) setNthCard(n int, order int) {
	if order < 0 || order >= MaxCards {
		panic(fmt.Errorf("card order %d is out of range for Hand", order))
	}

	shift := uint(n) * bitsPerOrder
	*h &^= slotMask << shift
	*h |= Hand(order+1) << shift
}

// NthCard returns the order of the card in the Nth slot.
func (h Hand) NthCard(n int) int {
	assertWithinRange(n)
	shift := uint(n) * bitsPerOrder
	return int((h>>shift)&slotMask) - 1
}

// Len returns the number of cards in the hand.
func (h Hand) Len() int {
	n := 0
	for ; h > 0; h >>= bitsPerOrder {
		n++
	}
	return n
}

// IndexOf returns the slot holding the given order, or -1.
func (h Hand) IndexOf(order int) int {
	for i := 0; h > 0; i++ {
		if int(h&slotMask)-1 == order {
			return i
		}
		h >>= bitsPerOrder
	}
	return -1
}

// Orders returns the card orders in the hand, newest first.
func (h Hand) Orders() []int {
	result := make([]int, 0, maxHandSize)
	for ; h > 0; h >>= bitsPerOrder {
		result = append(result, int(h&slotMask)-1)
	}
	return result
}

// RemoveCard removes the card in the Nth slot.
func (h *Hand) RemoveCard(n int) {
	assertWithinRange(n)
	nBitsToKeep := uint(n) * bitsPerOrder
	keepMask := Hand(1<<nBitsToKeep) - 1
	unchanged := (*h) & keepMask
	// Shift remaining cards one (but skip the nth card to remove it).
	toShift := (*h) &^ (keepMask << bitsPerOrder)
	*h = unchanged + (toShift >> bitsPerOrder)
}

// InsertCard places the given order in the Nth slot.
func (h *Hand) InsertCard(order int, n int) {
	assertWithinRange(n)
	if h.Len() >= maxHandSize {
		panic(fmt.Errorf("hand %v is full", *h))
	}

	nBitsToKeep := uint(n) * bitsPerOrder
	keepMask := Hand(1<<nBitsToKeep) - 1
	unchanged := (*h) & keepMask
	toShift := (*h) &^ keepMask
	// Shift remaining cards one to make room for the card we are inserting.
	*h = unchanged + (toShift << bitsPerOrder)
	h.setNthCard(n, order)
}

// String implements Stringer.
func (h Hand) String() string {
	orders := make([]string, 0)
	for _, order := range h.Orders() {
		orders = append(orders, fmt.Sprintf("%d", order))
	}

	return "[Hand: " + strings.Join(orders, ", ") + "]"
}
