package models

// Provision is one numbered clause of a statute, taken from the TOC panel
// of the statute's detail page.
type Provision struct {
	ID     string `json:"id" yaml:"id"` // fragment of the TOC link, also the id of the text block
	Number string `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	URL    string `json:"url" yaml:"url"`

	Content    string `json:"content,omitempty" yaml:"content,omitempty"`
	HasContent bool   `json:"has_content" yaml:"has_content"` // false when no element carries ID
}

// StatuteProvisions is the outcome of fetching one statute's detail page.
type StatuteProvisions struct {
	Statute    string
	Acronym    string
	DetailURL  string
	StatusCode int  // 0 when no response was received
	TOCFound   bool // false also when the page was never parsed
	Skipped    map[string]int
	Provisions []Provision
}
