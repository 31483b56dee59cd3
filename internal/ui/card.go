package ui

import "strconv"

const (
	cardBase          = "bg-white rounded-lg border border-secondary-200"
	cardHeaderClasses = "flex items-center justify-between border-b border-secondary-200 pb-4 mb-4"
	cardContentBase   = "text-secondary-700"
	cardTitleBase     = "font-semibold text-secondary-900"
)

var cardPaddings = map[Size]string{
	SizeNone: "",
	SizeSM:   "p-3",
	SizeMD:   "p-6",
	SizeLG:   "p-8",
}

var cardShadows = map[Size]string{
	SizeNone: "",
	SizeSM:   "shadow-sm",
	SizeMD:   "shadow-md",
	SizeLG:   "shadow-lg",
}

// Card is a bordered panel. Padding and Shadow default to md.
type Card struct {
	Padding Size
	Shadow  Size
	Class   string
}

// Classes returns the card's class list
func (c Card) Classes() string {
	padding, ok := cardPaddings[c.Padding]
	if !ok {
		padding = cardPaddings[SizeMD]
	}
	shadow, ok := cardShadows[c.Shadow]
	if !ok {
		shadow = cardShadows[SizeMD]
	}
	return Classes(cardBase, padding, shadow, c.Class)
}

// HeaderClasses is the class list of the card header row
func (Card) HeaderClasses() string { return cardHeaderClasses }

// ContentClasses is the class list of the card body
func (Card) ContentClasses() string { return cardContentBase }

var titleSizes = map[int]string{
	1: "text-2xl",
	2: "text-xl",
	3: "text-lg",
	4: "text-base",
	5: "text-sm",
	6: "text-xs",
}

// CardTitle is a card heading. Levels outside 1..6 render as level 3.
type CardTitle struct {
	Text  string
	Level int
	Class string
}

// HeadingLevel is Level clamped to a valid heading
func (t CardTitle) HeadingLevel() int {
	if _, ok := titleSizes[t.Level]; ok {
		return t.Level
	}
	return 3
}

// Tag is the heading element name, h1 to h6
func (t CardTitle) Tag() string {
	return "h" + strconv.Itoa(t.HeadingLevel())
}

// Classes returns the heading's class list
func (t CardTitle) Classes() string {
	return Classes(cardTitleBase, titleSizes[t.HeadingLevel()], t.Class)
}
