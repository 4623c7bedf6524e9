package domain

import "encoding/json"

// MenuItem is one line of a Gopher menu.
type MenuItem struct {
	Type     string `json:"type"`
	Display  string `json:"display"`
	Selector string `json:"selector"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// ParsedContent is either a menu (IsMenu with Items) or plain text.
type ParsedContent struct {
	IsMenu bool
	Items  []MenuItem
	Text   string
}

// Menu wraps items as menu content.
func Menu(items []MenuItem) ParsedContent {
	if items == nil {
		items = []MenuItem{}
	}
	return ParsedContent{IsMenu: true, Items: items}
}

// PlainText wraps text as non-menu content.
func PlainText(text string) ParsedContent {
	return ParsedContent{Text: text}
}

type menuJSON struct {
	IsMenu bool       `json:"isMenu"`
	Items  []MenuItem `json:"items"`
}

type textJSON struct {
	IsMenu bool   `json:"isMenu"`
	Text   string `json:"text"`
}

// MarshalJSON emits only the populated side of the union.
func (c ParsedContent) MarshalJSON() ([]byte, error) {
	if c.IsMenu {
		items := c.Items
		if items == nil {
			items = []MenuItem{}
		}
		return json.Marshal(menuJSON{IsMenu: true, Items: items})
	}
	return json.Marshal(textJSON{Text: c.Text})
}

func (c *ParsedContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		IsMenu bool       `json:"isMenu"`
		Items  []MenuItem `json:"items"`
		Text   string     `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.IsMenu {
		*c = Menu(raw.Items)
		return nil
	}
	*c = PlainText(raw.Text)
	return nil
}

var (
	_ json.Marshaler   = ParsedContent{}
	_ json.Unmarshaler = (*ParsedContent)(nil)
)
