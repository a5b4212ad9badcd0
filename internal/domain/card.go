package domain

import "strings"

// Card is the payload carried by board items: a short title and an optional markdown body.
type Card struct {
	Title string
	Body  string
}

// NewCard trims input and requires a title.
func NewCard(title, body string) (Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Card{}, ErrInvalidTitle
	}
	return Card{
		Title: title,
		Body:  strings.TrimSpace(body),
	}, nil
}

// CardItem is an item carrying a Card payload.
type CardItem = Item[Card]

// CardContainer is a container of card items.
type CardContainer = Container[Card]

// CardBoard is a board of card items.
type CardBoard = Board[Card]
