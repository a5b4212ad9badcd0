package domain

// DefaultSeed returns the built-in starting arrangement: three populated
// containers followed by an empty one.
func DefaultSeed() CardBoard {
	text := Card{Title: "Text"}
	return CardBoard{Containers: []CardContainer{
		{
			ID:    "01",
			Label: "Label A",
			Items: []CardItem{
				{ID: "01-01", Payload: text, StyleTag: "red"},
				{ID: "01-02", Payload: text, StyleTag: "blue"},
				{ID: "01-03", Payload: text, StyleTag: "orange bold"},
			},
		},
		{
			ID:    "02",
			Label: "Label B",
			Items: []CardItem{
				{ID: "02-01", Payload: Card{Title: "Text", Body: "Text  \nText"}, StyleTag: "string"},
				{ID: "02-02", Payload: Card{Title: "Text", Body: "Text"}, StyleTag: "string"},
				{ID: "02-03", Payload: Card{Title: "List", Body: "- List\n- List\n- List"}, StyleTag: "string"},
			},
		},
		{
			ID:    "03",
			Label: "Label C",
			Items: []CardItem{
				{ID: "03-01", Payload: text, StyleTag: "string"},
				{ID: "03-02", Payload: text, StyleTag: "string"},
				{ID: "03-03", Payload: text, StyleTag: "string"},
			},
		},
		{
			ID:    "04",
			Label: "Label D",
			Items: []CardItem{},
		},
	}}
}
