package slides

// Parts are the named fragments produced by one conversion.
type Parts struct {
	// Body holds the slide sections, without the document title.
	Body string `json:"body"`
	// Title is the diverted document title as HTML.
	Title string `json:"title"`
	// Subtitle is taken from the front matter as HTML.
	Subtitle string `json:"subtitle,omitempty"`
	// Meta is the "field = value" metadata blob.
	Meta string `json:"meta,omitempty"`
	// HeadMeta holds <meta> tags for the document head.
	HeadMeta string `json:"headMeta,omitempty"`
}

// Result holds the output of a conversion.
type Result struct {
	Parts    Parts     `json:"parts"`
	Metadata *Metadata `json:"metadata"`
	// Assets lists files written to the asset directory, relative to it.
	Assets   []string  `json:"assets,omitempty"`
	Slides   int       `json:"slides"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningNoTargetElement   WarningType = "no_target_element"
	WarningInvalidDirective  WarningType = "invalid_directive"
	WarningPlotFailed        WarningType = "plot_failed"
	WarningUnknownRole       WarningType = "unknown_role"
	WarningDroppedMetadata   WarningType = "dropped_metadata"
	WarningDroppedAttributes WarningType = "dropped_attributes"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Line     int         `json:"line,omitempty"`
	Message  string      `json:"message"`
}
