// Package kakao projects the internal report onto the Kakao skill
// response schema. This schema is the only contract the transport layer
// sees, and every code path must produce a well-formed instance of it.
package kakao

// SkillResponse is the fixed wire schema: a version tag plus an ordered
// list of output blocks.
type SkillResponse struct {
	Version  string   `json:"version"`
	Template Template `json:"template"`
}

// Template holds the output blocks and the shared follow-up suggestions.
type Template struct {
	Outputs      []Output     `json:"outputs"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// Output is either a plain-text block or a structured card, never both.
type Output struct {
	SimpleText *SimpleText `json:"simpleText,omitempty"`
	ItemCard   *ItemCard   `json:"itemCard,omitempty"`
}

// SimpleText is the plain-text block used by the no-data and error
// responses.
type SimpleText struct {
	Text string `json:"text"`
}

// ItemCard is one structured card: header, one-line description, and a
// fixed-length list of label/value items.
type ItemCard struct {
	ImageTitle  ImageTitle `json:"imageTitle"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description"`
	ItemList    []Item     `json:"itemList"`
}

// ImageTitle is the card header.
type ImageTitle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Item is one label/value pair on a card.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuickReply is a follow-up suggestion action.
type QuickReply struct {
	Label   string `json:"label"`
	Action  string `json:"action"`
	BlockID string `json:"blockId"`
}

// Block identifiers of the conversational flows the quick replies jump to.
const (
	blockReport    = "S02"
	blockNews      = "S06"
	blockWatchlist = "S10"
	blockHelp      = "HELP"
)
