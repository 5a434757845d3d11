package models

// Breakpoint is one responsive sizing rule consumed by the client resize
// script: below MaxWidth viewport pixels the stack is rendered at Width.
type Breakpoint struct {
	MaxWidth int    `json:"maxWidth"`
	Width    string `json:"width"`
}

// PresentationOptions controls the inert sizing hints placed in the markup.
// None of them affect the reconstruction itself.
type PresentationOptions struct {
	// Width and Height are CSS-like sizes ("320", "50%"); empty means natural.
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`

	// ParentSize sizes the stack relative to its #photo-container parent.
	ParentSize bool `json:"parent_size,omitempty"`

	Breakpoints []Breakpoint `json:"breakpoints,omitempty"`

	// Alt is the alternative text of the primary image.
	Alt string `json:"alt,omitempty"`
}

// Presentation is the payload that tells a browser how to recombine the
// delivered layers into the apparent original.
type Presentation struct {
	RecordID string `json:"record_id"`

	// HTML is the ready-to-embed markup fragment.
	HTML string `json:"html"`

	// URLs holds one freshly signed URL per delivered layer, in paint order.
	URLs []string `json:"urls"`

	// Filter is the CSS filter applied once to the container; empty when
	// the record is not distorted.
	Filter string `json:"filter,omitempty"`

	TileSize *int `json:"tile_size,omitempty"`
	Width    int  `json:"width"`
	Height   int  `json:"height"`
}
