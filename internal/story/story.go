// Package story holds the record types shared by the decoder, the
// paginator and the render layer.
package story

// Page is one reading page of a story.
// No is the 1-based position of the page in its decoded sequence; it is
// assigned at decode time and never stored in the content object.
type Page struct {
	No      int      `json:"page_no" yaml:"page_no"`
	Title   string   `json:"title" yaml:"title"`
	Content []string `json:"content" yaml:"content"`
}

// Overview is one entry of a namespace's story list.
type Overview struct {
	StoryID   string `json:"storyId" yaml:"story_id"`
	StoryName string `json:"storyName" yaml:"story_name"`
}

// Find returns the overview whose StoryID equals id.
func Find(overviews []Overview, id string) (Overview, bool) {
	for _, o := range overviews {
		if o.StoryID == id {
			return o, true
		}
	}
	return Overview{}, false
}
